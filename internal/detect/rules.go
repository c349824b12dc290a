package detect

import "strings"

// columnField is the semantic meaning behind a recognized column heading.
type columnField int

const (
	colUnknown columnField = iota
	colName
	colAddress
	colPostCode
	colProjectType
	colPhase
	colTrade
	colLabourCost
	colMaterialCost
	colOtherCost
)

// headerSynonyms is the schema-on-read rule table: recognized heading
// spellings mapped to semantic fields. New export formats are additive
// entries here, not new parsing code.
var headerSynonyms = map[string]columnField{
	"name":         colName,
	"job name":     colName,
	"job":          colName,
	"site name":    colName,
	"site":         colName,
	"project":      colName,
	"project name": colName,
	"client":       colName,

	"address":      colAddress,
	"site address": colAddress,
	"location":     colAddress,

	"postcode":    colPostCode,
	"post code":   colPostCode,
	"postal code": colPostCode,

	"project type": colProjectType,
	"job type":     colProjectType,
	"build type":   colProjectType,
	"type":         colProjectType,

	"phase":      colPhase,
	"stage":      colPhase,
	"work stage": colPhase,
	"category":   colPhase,
	"task":       colPhase,

	"trade": colTrade,
	"role":  colTrade,

	"labour":        colLabourCost,
	"labor":         colLabourCost,
	"labour cost":   colLabourCost,
	"labor cost":    colLabourCost,
	"labour rate":   colLabourCost,
	"day rate":      colLabourCost,
	"agency rate":   colLabourCost,
	"labour total":  colLabourCost,
	"wages":         colLabourCost,
	"material":      colMaterialCost,
	"materials":     colMaterialCost,
	"material cost": colMaterialCost,
	"materials cost": colMaterialCost,
	"parts":         colMaterialCost,
	"parts cost":    colMaterialCost,
	"supplies":      colMaterialCost,

	// Cost-bearing but unclassifiable headings. These lines stay out of
	// both totals; see the design note on uncategorized costs.
	"cost":   colOtherCost,
	"price":  colOtherCost,
	"amount": colOtherCost,
	"total":  colOtherCost,
	"value":  colOtherCost,
}

// columnLayout maps column indexes of the current header to fields.
// Cost fields keep every matching index: exports sometimes carry more
// than one labour or material column.
type columnLayout struct {
	name        int
	address     int
	postCode    int
	projectType int
	phase       int
	labour      []int
	material    []int
	other       []int
}

func (l columnLayout) hasCostColumns() bool {
	return len(l.labour) > 0 || len(l.material) > 0 || len(l.other) > 0
}

func mapHeader(cells []string) columnLayout {
	layout := columnLayout{name: -1, address: -1, postCode: -1, projectType: -1, phase: -1}
	for idx, cell := range cells {
		switch headerField(cell) {
		case colName:
			if layout.name < 0 {
				layout.name = idx
			}
		case colAddress:
			if layout.address < 0 {
				layout.address = idx
			}
		case colPostCode:
			if layout.postCode < 0 {
				layout.postCode = idx
			}
		case colProjectType:
			if layout.projectType < 0 {
				layout.projectType = idx
			}
		case colPhase:
			if layout.phase < 0 {
				layout.phase = idx
			}
		case colLabourCost:
			layout.labour = append(layout.labour, idx)
		case colMaterialCost:
			layout.material = append(layout.material, idx)
		case colOtherCost:
			layout.other = append(layout.other, idx)
		}
	}
	return layout
}

type rowKind int

const (
	rowBlank rowKind = iota
	rowHeader
	rowMeta
	rowTabular
	rowNoise
)

// classifyRow decides what one row is, given the column layout declared
// by the most recent header.
func classifyRow(cells []string, layout columnLayout) rowKind {
	if allEmpty(cells) {
		return rowBlank
	}

	// Header: at least two cells that read as headings rather than data.
	if headings := countHeadings(cells); headings >= 2 && headings >= len(nonEmpty(cells))-1 {
		return rowHeader
	}

	// Key-value metadata: a heading in the first cell, a value after it.
	if field := headerField(cells[0]); isMetaField(field) && len(cells) > 1 && !allEmpty(cells[1:]) {
		return rowMeta
	}

	// Anything the current layout can interpret.
	if layout.name >= 0 && cellAt(cells, layout.name) != "" {
		return rowTabular
	}
	if layout.hasCostColumns() || layout.phase >= 0 {
		for _, idx := range append(append(append([]int{layout.phase}, layout.labour...), layout.material...), layout.other...) {
			if cellAt(cells, idx) != "" {
				return rowTabular
			}
		}
	}

	return rowNoise
}

func metaKeyValue(cells []string) (columnField, string) {
	field := headerField(cells[0])
	for _, cell := range cells[1:] {
		if cell != "" {
			return field, cell
		}
	}
	return field, ""
}

func headerField(cell string) columnField {
	normalized := strings.ToLower(strings.TrimSpace(cell))
	normalized = strings.TrimSuffix(normalized, ":")
	normalized = strings.Join(strings.Fields(normalized), " ")
	return headerSynonyms[normalized]
}

func isMetaField(field columnField) bool {
	switch field {
	case colName, colAddress, colPostCode, colProjectType:
		return true
	}
	return false
}

func countHeadings(cells []string) int {
	count := 0
	for _, cell := range cells {
		if cell != "" && headerField(cell) != colUnknown {
			count++
		}
	}
	return count
}

func nonEmpty(cells []string) []string {
	var out []string
	for _, cell := range cells {
		if cell != "" {
			out = append(out, cell)
		}
	}
	return out
}

func allEmpty(cells []string) bool {
	for _, cell := range cells {
		if cell != "" {
			return false
		}
	}
	return true
}
