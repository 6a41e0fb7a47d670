/*------------------------------------------------------------------------------
* wireinfo.go : wire table persistence
*
* Writes and reads the flat per-wire table used for offline cross-checking
* and for driving digitization/reconstruction from a saved table without
* rebuilding the geometry from a volume tree. Columns:
* id,x,y,z,length,orientation,ax,ay,az (center, length, orientation with
* 0 horizontal and 1 vertical, and unit direction).
*
*          Copyright (C) 2024-2025 sandtrack contributors, All rights reserved.
*-----------------------------------------------------------------------------*/
package sandtrack

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

var wireInfoHeader = []string{"id", "x", "y", "z", "length", "orientation", "ax", "ay", "az"}

/* WriteWireInfo writes one row per wire to path in the format above. */
func WriteWireInfo(path string, wires []Wire) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sandtrack: create wireinfo %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(wireInfoHeader); err != nil {
		return fmt.Errorf("sandtrack: write wireinfo header: %w", err)
	}
	for _, wire := range wires {
		dir := wire.Direction()
		row := []string{
			strconv.FormatInt(wire.ID, 10),
			strconv.FormatFloat(wire.Center.X, 'g', -1, 64),
			strconv.FormatFloat(wire.Center.Y, 'g', -1, 64),
			strconv.FormatFloat(wire.Center.Z, 'g', -1, 64),
			strconv.FormatFloat(wire.Length, 'g', -1, 64),
			strconv.Itoa(int(wire.Orientation)),
			strconv.FormatFloat(dir.X, 'g', -1, 64),
			strconv.FormatFloat(dir.Y, 'g', -1, 64),
			strconv.FormatFloat(dir.Z, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("sandtrack: write wireinfo row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("sandtrack: flush wireinfo %q: %w", path, err)
	}
	return nil
}

/* ReadWireInfo reads a wire table previously written by WriteWireInfo,
 * reconstructing each wire's endpoints from its center, length and unit
 * direction. */
func ReadWireInfo(path string) ([]Wire, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sandtrack: open wireinfo %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("sandtrack: parse wireinfo %q: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyWireTable, path)
	}

	var wires []Wire
	for _, row := range rows[1:] {
		wire, err := parseWireInfoRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedWireInfo, err)
		}
		wires = append(wires, wire)
	}
	return wires, nil
}

func parseWireInfoRow(row []string) (Wire, error) {
	if len(row) != len(wireInfoHeader) {
		return Wire{}, fmt.Errorf("expected %d columns, got %d", len(wireInfoHeader), len(row))
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return Wire{}, err
	}
	x, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return Wire{}, err
	}
	y, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return Wire{}, err
	}
	z, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return Wire{}, err
	}
	length, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return Wire{}, err
	}
	orient, err := strconv.Atoi(row[5])
	if err != nil {
		return Wire{}, err
	}
	ax, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return Wire{}, err
	}
	ay, err := strconv.ParseFloat(row[7], 64)
	if err != nil {
		return Wire{}, err
	}
	az, err := strconv.ParseFloat(row[8], 64)
	if err != nil {
		return Wire{}, err
	}

	center := Point3{X: x, Y: y, Z: z}
	dir := Point3{X: ax, Y: ay, Z: az}
	half := dir.Scale(length / 2)
	return Wire{
		ID:          id,
		P1:          center.Sub(half),
		P2:          center.Add(half),
		Center:      center,
		Length:      length,
		Orientation: Orientation(orient),
		Readout:     ReadoutUnknown,
	}, nil
}
