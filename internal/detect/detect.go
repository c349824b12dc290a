package detect

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Job is a single construction job recovered from an uploaded sheet. It
// only exists between detection and the operator approving the upload.
type Job struct {
	Name                   string      `json:"name"`
	Address                string      `json:"address"`
	PostCode               string      `json:"postCode"`
	ProjectType            string      `json:"projectType"`
	Phases                 []string    `json:"phases"`
	ResourceCount          int         `json:"resourceCount"`
	TotalLabourCostPence   int         `json:"totalLabourCost"`
	TotalMaterialCostPence int         `json:"totalMaterialCost"`
	PhaseCosts             []PhaseCost `json:"phaseCosts"`
}

// PhaseCost is the per-phase cost breakdown, in the same first-seen order
// as Job.Phases. The upload step persists these onto Phase records.
type PhaseCost struct {
	PhaseName     string `json:"phaseName"`
	LabourPence   int    `json:"labourCost"`
	MaterialPence int    `json:"materialCost"`
}

// Result is what Detect returns. TotalJobs == 0 is the structured
// "nothing to import" outcome, not a failure.
type Result struct {
	Jobs      []Job `json:"jobs"`
	TotalJobs int   `json:"totalJobs"`
}

type Detector struct {
	logger zerolog.Logger
}

func NewDetector(logger zerolog.Logger) Detector {
	return Detector{logger: logger}
}

// Detect parses raw delimited text into zero or more jobs. It is a pure
// single-pass fold over the rows: malformed rows degrade to zero/empty
// contributions and are logged, they never abort the batch.
//
// Two export layouts are recognized, and may be mixed within one sheet:
// key-value blocks ("Name,Site A" followed by a resource table) and
// columnar blocks where each resource row restates the job metadata and
// a reappearing name marks the next job.
func (d Detector) Detect(content string) (Result, error) {
	s := &scan{detector: d, layout: columnLayout{name: -1, address: -1, postCode: -1, projectType: -1, phase: -1}}

	for _, row := range readRows(content) {
		switch classifyRow(row.cells, s.layout) {
		case rowBlank:
			// skip
		case rowHeader:
			s.layout = mapHeader(row.cells)
		case rowMeta:
			s.metaRow(row)
		case rowTabular:
			s.tabularRow(row)
		case rowNoise:
			d.logger.Debug().Int("row", row.number).Msg("Skipping unrecognized csv row")
		}
	}

	jobs := s.finish()
	return Result{Jobs: jobs, TotalJobs: len(jobs)}, nil
}

// scan is the fold state: the closed jobs so far plus the open block.
// Nothing in here escapes the Detect call.
type scan struct {
	detector Detector
	layout   columnLayout
	jobs     []Job
	cur      *block
	named    bool // a real job-start row was seen somewhere in the sheet
}

// metaRow handles a key-value metadata row. A "Name" key closes the open
// block and starts the next job.
func (s *scan) metaRow(r row) {
	field, value := metaKeyValue(r.cells)
	if field == colName {
		s.startJob(value)
		return
	}
	s.open().setMeta(field, value)
}

// tabularRow handles a row interpreted through the current column layout:
// possibly a job start, possibly a resource line, often both.
func (s *scan) tabularRow(r row) {
	if name := cellAt(r.cells, s.layout.name); name != "" && (s.cur == nil || name != s.cur.job.Name) {
		s.startJob(name)
	}
	b := s.open()
	b.setMeta(colAddress, cellAt(r.cells, s.layout.address))
	b.setMeta(colPostCode, cellAt(r.cells, s.layout.postCode))
	b.setMeta(colProjectType, cellAt(r.cells, s.layout.projectType))
	s.detector.foldResource(b, r, s.layout)
}

// startJob closes the open block and opens a fresh one with the name.
func (s *scan) startJob(name string) {
	if s.cur != nil {
		s.jobs = append(s.jobs, s.cur.close())
	}
	s.cur = newBlock()
	s.cur.job.Name = name
	s.named = true
}

func (s *scan) open() *block {
	if s.cur == nil {
		s.cur = newBlock()
	}
	return s.cur
}

func (s *scan) finish() []Job {
	if s.cur != nil {
		s.jobs = append(s.jobs, s.cur.close())
		s.cur = nil
	}

	// Nameless blocks are trailing junk, not jobs -- unless the sheet
	// never declared a job at all, in which case the single best-effort
	// block is the import.
	kept := make([]Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if j.Name != "" {
			kept = append(kept, j)
		} else if !s.named && len(kept) == 0 && jobHasContent(j) {
			kept = append(kept, j)
		}
	}
	return kept
}

// foldResource folds one cost-bearing row into the open block. Each
// priced cell contributes to the category its column heading declares;
// columns that carry a cost but no recognizable category stay out of
// both totals.
func (d Detector) foldResource(b *block, r row, layout columnLayout) {
	phase := cellAt(r.cells, layout.phase)
	priced := false

	fold := func(indexes []int, cat category) {
		for _, idx := range indexes {
			raw := cellAt(r.cells, idx)
			if raw == "" {
				continue
			}
			priced = true
			pence, ok := parseMoneyPence(raw)
			if !ok {
				d.logger.Warn().Int("row", r.number).Str("cell", raw).Msg("Unparseable cost cell, counting as zero")
				pence = 0
			}
			b.addCost(phase, cat, pence)
		}
	}

	fold(layout.labour, categoryLabour)
	fold(layout.material, categoryMaterial)

	for _, idx := range layout.other {
		if raw := cellAt(r.cells, idx); raw != "" {
			priced = true
			// Uncategorized costs are excluded from both totals. Logged so
			// the undercount stays visible to operators.
			d.logger.Debug().Int("row", r.number).Str("phase", phase).Str("cell", raw).Msg("Cost in unrecognized column excluded from totals")
			b.addCost(phase, categoryOther, 0)
		}
	}

	if priced {
		b.job.ResourceCount++
	}
}

type category int

const (
	categoryLabour category = iota
	categoryMaterial
	categoryOther
)

// block accumulates one job while scanning its rows.
type block struct {
	job        Job
	phaseOrder []string
	phaseCosts map[string]*PhaseCost
}

func newBlock() *block {
	return &block{phaseCosts: make(map[string]*PhaseCost)}
}

func (b *block) setMeta(field columnField, value string) {
	if value == "" {
		return
	}
	switch field {
	case colAddress:
		if b.job.Address == "" {
			b.job.Address = value
		}
	case colPostCode:
		if b.job.PostCode == "" {
			b.job.PostCode = value
		}
	case colProjectType:
		if b.job.ProjectType == "" {
			b.job.ProjectType = value
		}
	}
}

func (b *block) addCost(phase string, cat category, pence int) {
	if pence < 0 {
		pence = 0
	}
	if phase != "" {
		if _, seen := b.phaseCosts[phase]; !seen {
			b.phaseOrder = append(b.phaseOrder, phase)
			b.phaseCosts[phase] = &PhaseCost{PhaseName: phase}
		}
	}
	switch cat {
	case categoryLabour:
		b.job.TotalLabourCostPence += pence
		if phase != "" {
			b.phaseCosts[phase].LabourPence += pence
		}
	case categoryMaterial:
		b.job.TotalMaterialCostPence += pence
		if phase != "" {
			b.phaseCosts[phase].MaterialPence += pence
		}
	}
}

func (b *block) close() Job {
	job := b.job
	job.Phases = make([]string, len(b.phaseOrder))
	job.PhaseCosts = make([]PhaseCost, len(b.phaseOrder))
	for i, phase := range b.phaseOrder {
		job.Phases[i] = phase
		job.PhaseCosts[i] = *b.phaseCosts[phase]
	}
	return job
}

func jobHasContent(j Job) bool {
	return j.ResourceCount > 0 || j.Address != "" || j.PostCode != "" || j.ProjectType != ""
}

type row struct {
	number int
	cells  []string
}

// readRows splits content into trimmed csv rows, one logical row per
// line. Lines the csv reader cannot make sense of fall back to a naive
// comma split rather than failing the parse.
func readRows(content string) []row {
	var rows []row
	number := 0
	for line := range strings.Lines(content) {
		number++
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		reader := csv.NewReader(strings.NewReader(line))
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true
		reader.TrimLeadingSpace = true
		cells, err := reader.Read()
		if err != nil && err != io.EOF {
			cells = strings.Split(line, ",")
		}
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		rows = append(rows, row{number: number, cells: cells})
	}
	return rows
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}
