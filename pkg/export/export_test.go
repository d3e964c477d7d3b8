package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/fleetcompute/core/fleet"
	"github.com/kilianp07/fleetcompute/core/model"
)

func TestWritePricesCSV(t *testing.T) {
	ts := time.Date(2024, 6, 1, 17, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, WritePricesCSV(&buf, []model.PricePoint{{Price: 41.5, Timestamp: ts}}))
	assert.Equal(t, "timestamp,price\n2024-06-01T17:00:00Z,41.50\n", buf.String())
}

func TestWriteVehiclesCSV(t *testing.T) {
	vs := fleet.List(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	var buf bytes.Buffer
	require.NoError(t, WriteVehiclesCSV(&buf, vs))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(vs)+1)
	assert.Equal(t, "hub_id", rows[0][3])
	assert.Equal(t, "vehicle_0", rows[1][0])
	assert.Equal(t, "", rows[len(rows)-1][3])
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestPricesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Prices(&buf, FormatJSON, []model.PricePoint{{Price: 1}}))
	assert.True(t, strings.HasPrefix(buf.String(), "["))
}
