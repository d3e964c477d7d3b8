// Package export writes simulation output as JSON or CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kilianp07/fleetcompute/core/model"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want json or csv)", s)
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WritePricesCSV writes price points with a timestamp,price header.
func WritePricesCSV(w io.Writer, points []model.PricePoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "price"}); err != nil {
		return err
	}
	for _, p := range points {
		rec := []string{
			p.Timestamp.UTC().Format(time.RFC3339),
			strconv.FormatFloat(p.Price, 'f', 2, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteVehiclesCSV writes one row per vehicle. Roaming vehicles have an
// empty hub_id column.
func WriteVehiclesCSV(w io.Writer, vehicles []model.Vehicle) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "status", "company", "hub_id", "compute_load", "lat", "lng"}); err != nil {
		return err
	}
	for _, v := range vehicles {
		rec := []string{
			v.ID,
			string(v.Status),
			v.Company,
			v.HubID,
			strconv.FormatFloat(v.ComputeLoad, 'f', -1, 64),
			strconv.FormatFloat(v.Lat, 'f', 4, 64),
			strconv.FormatFloat(v.Lng, 'f', 4, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Prices writes points in the requested format.
func Prices(w io.Writer, f Format, points []model.PricePoint) error {
	if f == FormatCSV {
		return WritePricesCSV(w, points)
	}
	return WriteJSON(w, points)
}

// Vehicles writes vehicles in the requested format.
func Vehicles(w io.Writer, f Format, vehicles []model.Vehicle) error {
	if f == FormatCSV {
		return WriteVehiclesCSV(w, vehicles)
	}
	return WriteJSON(w, vehicles)
}
