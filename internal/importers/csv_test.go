package importers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "prof_cm", NormalizeHeader("Prof. (cm)"))
	assert.Equal(t, "p_mgdm3", NormalizeHeader("P (mg/dm³)"))
	assert.Equal(t, "k_mgdm3", NormalizeHeader("K (mg/dm³)"))
	assert.Equal(t, "materia_organica", NormalizeHeader("Matéria Orgânica"))
	assert.Equal(t, "ca2_cmolcdm3", NormalizeHeader("Ca²⁺ (cmolc/dm³)"))
	assert.Equal(t, "ponto", NormalizeHeader("  Ponto  "))
	assert.Equal(t, "ph-h2o", NormalizeHeader("pH–H2O"))
	assert.Equal(t, "", NormalizeHeader(""))
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ";", DetectDelimiter("ponto;prof;k\n1;0-20;90"))
	assert.Equal(t, ",", DetectDelimiter("ponto,prof,k\n1,0-20,90"))
	assert.Equal(t, "\t", DetectDelimiter("ponto\tprof\tk\n1\t0-20\t90"))
	assert.Equal(t, "|", DetectDelimiter("ponto|prof|k\n1|0-20|90"))
}

func TestDetectDelimiterEmptySample(t *testing.T) {
	assert.Equal(t, ";", DetectDelimiter(""))
	assert.Equal(t, ";", DetectDelimiter("singlecolumn"))
}

func TestDetectDelimiterUsesFirstTenLines(t *testing.T) {
	// Commas only appear after line 10, so they must not influence detection.
	text := "a;b\n1;2\n1;2\n1;2\n1;2\n1;2\n1;2\n1;2\n1;2\n1;2\n" +
		"x,y,z,w,v,u\nx,y,z,w,v,u\nx,y,z,w,v,u\nx,y,z,w,v,u\n"
	assert.Equal(t, ";", DetectDelimiter(text))
}

func TestParseCSV(t *testing.T) {
	text := "Ponto;Prof. (cm);K (mg/dm³)\n1;0-20;90\n2;0-20;110\n"

	ds, delimiter := ParseCSV(text)

	assert.Equal(t, ";", delimiter)
	assert.Equal(t, []string{"ponto", "prof_cm", "k_mgdm3"}, ds.Headers)
	assert.Equal(t, [][]string{
		{"1", "0-20", "90"},
		{"2", "0-20", "110"},
	}, ds.Rows)
}

func TestParseCSVRepairsDecimalCommas(t *testing.T) {
	text := "ponto;ph;k\n1;5,6;90\n2;-1,5;obs,livre\n"

	ds, _ := ParseCSV(text)

	assert.Equal(t, "5.6", ds.Rows[0][1])
	assert.Equal(t, "-1.5", ds.Rows[1][1])
	// Free text containing a comma is left alone.
	assert.Equal(t, "obs,livre", ds.Rows[1][2])
}

func TestParseCSVSkipsBlankLines(t *testing.T) {
	text := "ponto;k\n\n1;90\n   \n2;110\n\n"

	ds, _ := ParseCSV(text)

	assert.Len(t, ds.Rows, 2)
}

func TestParseCSVAdjustsRowWidth(t *testing.T) {
	text := "ponto;prof;k\n1;0-20\n2;0-20;90;extra\n"

	ds, _ := ParseCSV(text)

	assert.Equal(t, []string{"1", "0-20", ""}, ds.Rows[0])
	assert.Equal(t, []string{"2", "0-20", "90"}, ds.Rows[1])
}

func TestParseCSVHandlesCRLF(t *testing.T) {
	text := "ponto;k\r\n1;90\r\n2;110\r\n"

	ds, _ := ParseCSV(text)

	assert.Equal(t, [][]string{{"1", "90"}, {"2", "110"}}, ds.Rows)
}

func TestParseCSVEmptyInput(t *testing.T) {
	ds, _ := ParseCSV("")

	assert.Empty(t, ds.Headers)
	assert.Empty(t, ds.Rows)
}
