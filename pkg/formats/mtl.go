package formats

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
)

// OBJMaterial is one material record from a Wavefront MTL library.
type OBJMaterial struct {
	Name      string
	Diffuse   [3]float32
	Specular  [3]float32
	Emission  [3]float32
	Shininess float32
	IOR       float32
	Illum     int

	DiffuseMap  string
	NormalMap   string
	SpecularMap string
	EmissiveMap string
}

// ParseMTL parses a Wavefront material library. Malformed lines are skipped;
// an MTL file is auxiliary data and never fails the model load.
func ParseMTL(data []byte) []OBJMaterial {
	var mats []OBJMaterial
	var cur *OBJMaterial

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		key := strings.ToLower(fields[0])

		if key == "newmtl" {
			if len(fields) < 2 {
				continue
			}
			mats = append(mats, OBJMaterial{
				Name: fields[1],
				IOR:  1.0,
			})
			cur = &mats[len(mats)-1]
			continue
		}
		if cur == nil {
			continue
		}

		switch key {
		case "kd":
			if c, ok := parseColor(fields[1:]); ok {
				cur.Diffuse = c
			}
		case "ks":
			if c, ok := parseColor(fields[1:]); ok {
				cur.Specular = c
			}
		case "ke":
			if c, ok := parseColor(fields[1:]); ok {
				cur.Emission = c
			}
		case "ns":
			if v, ok := parseScalar(fields[1:]); ok {
				cur.Shininess = v
			}
		case "ni":
			if v, ok := parseScalar(fields[1:]); ok {
				cur.IOR = v
			}
		case "illum":
			if len(fields) >= 2 {
				if v, err := strconv.Atoi(fields[1]); err == nil {
					cur.Illum = v
				}
			}
		case "map_kd":
			if len(fields) >= 2 {
				cur.DiffuseMap = fields[len(fields)-1]
			}
		case "map_bump", "bump", "norm":
			if len(fields) >= 2 {
				cur.NormalMap = fields[len(fields)-1]
			}
		case "map_ks":
			if len(fields) >= 2 {
				cur.SpecularMap = fields[len(fields)-1]
			}
		case "map_ke":
			if len(fields) >= 2 {
				cur.EmissiveMap = fields[len(fields)-1]
			}
		}
	}

	return mats
}

func parseColor(fields []string) ([3]float32, bool) {
	var c [3]float32
	if len(fields) < 3 {
		return c, false
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return c, false
		}
		c[i] = float32(v)
	}
	return c, true
}

func parseScalar(fields []string) (float32, bool) {
	if len(fields) < 1 {
		return 0, false
	}
	v, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return 0, false
	}
	return float32(v), true
}
