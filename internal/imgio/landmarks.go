package imgio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/facepaint/facepaint/internal/landmark"
	"github.com/facepaint/facepaint/pkg/geom"
)

// Landmarks parses a landmark file as produced by the upstream
// detector. Two layouts are accepted: an object with a "points" array
// of {"x": .., "y": ..} entries, or a flat [x0, y0, x1, y1, ...]
// number array.
func Landmarks(fileName string) (landmark.Sequence, error) {
	data, err := os.ReadFile(fileName)

	if err != nil {
		return nil, fmt.Errorf("imgio: %s", err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("imgio: invalid landmark json in %s", filepath.Base(fileName))
	}

	root := gjson.ParseBytes(data)

	points := root.Get("points")

	if !points.Exists() {
		points = root
	}

	var pts landmark.Sequence

	if arr := points.Array(); len(arr) > 0 && arr[0].IsObject() {
		for _, v := range arr {
			pts = append(pts, geom.Pt(v.Get("x").Float(), v.Get("y").Float()))
		}
	} else {
		for i := 0; i+1 < len(arr); i += 2 {
			pts = append(pts, geom.Pt(arr[i].Float(), arr[i+1].Float()))
		}
	}

	if err := pts.Validate(); err != nil {
		return nil, fmt.Errorf("%w in %s", err, filepath.Base(fileName))
	}

	return pts, nil
}
