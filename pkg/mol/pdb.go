package mol

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Traksewt/pv/pkg/math"
)

// ssRange marks a secondary structure assignment from a HELIX or SHEET
// record, applied to residues after all ATOM records are read.
type ssRange struct {
	chain    string
	from, to int
	ss       SecStructure
}

// ReadPDBFile reads a structure from a PDB file. Files ending in .gz are
// decompressed transparently.
func ReadPDBFile(path string) (*Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if filepath.Ext(path) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}
	s, err := ReadPDB(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s, nil
}

// ReadPDB reads a structure from PDB-format text. Only the first model
// of a multi-model file is read. HELIX and SHEET records drive the
// secondary structure classification; everything else defaults to coil.
func ReadPDB(r io.Reader) (*Structure, error) {
	s := NewStructure()
	var ranges []ssRange

	var curChain *Chain
	var curResidue *Residue

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		line := scanner.Text()
		lineNum++
		if len(line) < 6 {
			continue
		}
		record := strings.TrimSpace(line[:6])
		switch record {
		case "ATOM", "HETATM":
			if err := parseAtomLine(s, line, &curChain, &curResidue); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
		case "HELIX":
			if rr, ok := parseSSRange(line, 19, 21, 33, Helix); ok {
				ranges = append(ranges, rr)
			}
		case "SHEET":
			if rr, ok := parseSSRange(line, 21, 22, 33, Strand); ok {
				ranges = append(ranges, rr)
			}
		case "TER":
			curChain, curResidue = nil, nil
		case "ENDMDL":
			// First model only.
			applySS(s, ranges)
			return s, scanner.Err()
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	applySS(s, ranges)
	return s, nil
}

// parseAtomLine parses one ATOM/HETATM record using the fixed PDB
// column layout.
func parseAtomLine(s *Structure, line string, curChain **Chain, curResidue **Residue) error {
	if len(line) < 54 {
		return fmt.Errorf("short ATOM record")
	}

	// Alternate locations: keep only the primary conformation.
	altLoc := line[16]
	if altLoc != ' ' && altLoc != 'A' {
		return nil
	}

	name := strings.TrimSpace(line[12:16])
	resName := strings.TrimSpace(line[17:20])
	chainName := strings.TrimSpace(line[21:22])
	resNum, err := strconv.Atoi(strings.TrimSpace(line[22:26]))
	if err != nil {
		return fmt.Errorf("bad residue number: %w", err)
	}

	x, err := parseCoord(line[30:38])
	if err != nil {
		return err
	}
	y, err := parseCoord(line[38:46])
	if err != nil {
		return err
	}
	z, err := parseCoord(line[46:54])
	if err != nil {
		return err
	}

	element := ""
	if len(line) >= 78 {
		element = strings.ToUpper(strings.TrimSpace(line[76:78]))
	}
	if element == "" {
		element = elementFromName(name)
	}

	if *curChain == nil || (*curChain).Name != chainName {
		*curChain = s.Chain(chainName)
		if *curChain == nil {
			*curChain = s.AddChain(chainName)
		}
		*curResidue = nil
	}
	if *curResidue == nil || (*curResidue).Num != resNum || (*curResidue).Name != resName {
		*curResidue = (*curChain).AddResidue(resName, resNum)
	}
	(*curResidue).AddAtom(name, element, math.Vec3{X: x, Y: y, Z: z})
	return nil
}

func parseCoord(field string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
	if err != nil {
		return 0, fmt.Errorf("bad coordinate %q: %w", field, err)
	}
	return float32(v), nil
}

// elementFromName guesses the element symbol from a PDB atom name when
// the element column is absent (older files).
func elementFromName(name string) string {
	for _, c := range name {
		if c >= 'A' && c <= 'Z' {
			return string(c)
		}
	}
	return ""
}

// parseSSRange extracts chain and residue bounds from a HELIX or SHEET
// record. Column offsets differ between the two record types.
func parseSSRange(line string, chainCol, fromCol, toCol int, ss SecStructure) (ssRange, bool) {
	if len(line) < toCol+4 {
		return ssRange{}, false
	}
	from, err1 := strconv.Atoi(strings.TrimSpace(line[fromCol : fromCol+4]))
	to, err2 := strconv.Atoi(strings.TrimSpace(line[toCol : toCol+4]))
	if err1 != nil || err2 != nil {
		return ssRange{}, false
	}
	return ssRange{
		chain: strings.TrimSpace(line[chainCol : chainCol+1]),
		from:  from,
		to:    to,
		ss:    ss,
	}, true
}

func applySS(s *Structure, ranges []ssRange) {
	for _, rr := range ranges {
		c := s.Chain(rr.chain)
		if c == nil {
			continue
		}
		for _, res := range c.Residues() {
			if res.Num >= rr.from && res.Num <= rr.to {
				res.SS = rr.ss
			}
		}
	}
}
