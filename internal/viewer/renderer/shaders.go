package renderer

// meshVertexShader transforms lit triangle geometry (tubes, cartoons).
const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec4 aColor;

uniform mat4 uMVP;
uniform mat4 uModel;

out vec3 vNormal;
out vec4 vColor;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vNormal = mat3(uModel) * aNormal;
	vColor = aColor;
}
`

// meshFragmentShader applies two-sided lambert shading with a small
// ambient term, so the inside of cartoon helices stays visible.
const meshFragmentShader = `
#version 410 core

in vec3 vNormal;
in vec4 vColor;

uniform vec3 uLightDir;

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	float diff = abs(dot(n, normalize(uLightDir)));
	vec3 lit = vColor.rgb * (0.35 + 0.65 * diff);
	FragColor = vec4(lit, vColor.a);
}
`

// lineVertexShader transforms unlit line geometry (bonds, traces).
const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 2) in vec4 aColor;

uniform mat4 uMVP;

out vec4 vColor;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vColor = aColor;
}
`

const lineFragmentShader = `
#version 410 core

in vec4 vColor;

out vec4 FragColor;

void main() {
	FragColor = vColor;
}
`

// pointVertexShader renders atoms as screen-space point sprites whose
// size falls off with distance.
const pointVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 2) in vec4 aColor;

uniform mat4 uMVP;
uniform float uPointScale;

out vec4 vColor;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	gl_PointSize = uPointScale / max(gl_Position.w, 0.1);
	vColor = aColor;
}
`

// pointFragmentShader shades each sprite as a fake sphere and discards
// fragments outside the disc.
const pointFragmentShader = `
#version 410 core

in vec4 vColor;

uniform vec3 uLightDir;

out vec4 FragColor;

void main() {
	vec2 d = gl_PointCoord * 2.0 - 1.0;
	float r2 = dot(d, d);
	if (r2 > 1.0) {
		discard;
	}
	vec3 n = vec3(d.x, -d.y, sqrt(1.0 - r2));
	float diff = max(dot(n, normalize(uLightDir)), 0.0);
	vec3 lit = vColor.rgb * (0.35 + 0.65 * diff);
	FragColor = vec4(lit, vColor.a);
}
`
