package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeYearFile(t *testing.T, dir string, year string, contents string) {
	t.Helper()
	path := filepath.Join(dir, year+"_data.csv")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestCSVSourceLoad(t *testing.T) {
	dir := t.TempDir()
	writeYearFile(t, dir, "2013",
		"ReporterName,PartnerName,NetWeight\n"+
			"Japan,Qatar,1000\n"+
			"Korea,Qatar,500\n")

	source := NewCSVSource(dir)
	records, err := source.Load(context.Background(), 2013)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Origin != "Qatar" || first.Destination != "Japan" {
		t.Errorf("Expected Qatar->Japan, got %s->%s", first.Origin, first.Destination)
	}
	if first.Volume != 1000 {
		t.Errorf("Expected volume 1000, got %f", first.Volume)
	}
	if first.Year != 2013 {
		t.Errorf("Expected year 2013, got %d", first.Year)
	}
}

func TestCSVSourceColumnAliases(t *testing.T) {
	dir := t.TempDir()
	writeYearFile(t, dir, "2014",
		"reporter,partner,netwgt\n"+
			"Japan,Australia,750\n")

	source := NewCSVSource(dir)
	records, err := source.Load(context.Background(), 2014)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Origin != "Australia" || records[0].Volume != 750 {
		t.Errorf("Unexpected record: %+v", records[0])
	}
}

func TestCSVSourceSkipsBadWeights(t *testing.T) {
	dir := t.TempDir()
	writeYearFile(t, dir, "2015",
		"ReporterName,PartnerName,NetWeight\n"+
			"Japan,Qatar,\n"+
			"Japan,Australia,n/a\n"+
			"Korea,Qatar,250\n")

	source := NewCSVSource(dir)
	records, err := source.Load(context.Background(), 2015)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected rows without numeric weights skipped, got %d records", len(records))
	}
	if records[0].Destination != "Korea" {
		t.Errorf("Expected surviving row Korea, got %s", records[0].Destination)
	}
}

func TestCSVSourceSkipsRaggedRows(t *testing.T) {
	dir := t.TempDir()
	// The second data row is missing its weight column; the rows after it
	// must still be read.
	writeYearFile(t, dir, "2020",
		"ReporterName,PartnerName,NetWeight\n"+
			"Japan,Qatar,1000\n"+
			"Korea,Qatar\n"+
			"Korea,Australia,400\n"+
			"China,Qatar,800\n")

	source := NewCSVSource(dir)
	records, err := source.Load(context.Background(), 2020)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected the 3 well-formed rows, got %d", len(records))
	}
	if records[2].Origin != "Qatar" || records[2].Destination != "China" {
		t.Errorf("Expected last row Qatar->China, got %s->%s",
			records[2].Origin, records[2].Destination)
	}
}

func TestCSVSourceMissingYear(t *testing.T) {
	source := NewCSVSource(t.TempDir())
	records, err := source.Load(context.Background(), 2016)
	if err != nil {
		t.Fatalf("Missing year should not error: %v", err)
	}
	if records != nil {
		t.Errorf("Expected nil records for missing year, got %d", len(records))
	}
}

func TestCSVSourceMissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeYearFile(t, dir, "2017",
		"ReporterName,NetWeight\n"+
			"Japan,1000\n")

	source := NewCSVSource(dir)
	if _, err := source.Load(context.Background(), 2017); err == nil {
		t.Error("Expected error for missing partner column")
	}
}

func TestCSVSourceCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeYearFile(t, dir, "2018",
		"ReporterName,PartnerName,NetWeight\n"+
			"Japan,Qatar,1000\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := NewCSVSource(dir)
	if _, err := source.Load(ctx, 2018); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestCSVSourceTrimsNames(t *testing.T) {
	dir := t.TempDir()
	writeYearFile(t, dir, "2019",
		"ReporterName,PartnerName,NetWeight\n"+
			" Japan , Qatar ,1000\n")

	source := NewCSVSource(dir)
	records, err := source.Load(context.Background(), 2019)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if records[0].Origin != "Qatar" || records[0].Destination != "Japan" {
		t.Errorf("Expected trimmed names, got %q->%q", records[0].Origin, records[0].Destination)
	}
}
