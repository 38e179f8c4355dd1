package pricing

import "time"

// PaperType drives the caliper factor used for thickness estimation.
type PaperType string

const (
	PaperCoated   PaperType = "Coated"
	PaperUncoated PaperType = "Uncoated"
)

// PaperUsage names the selector a stock is offered in.
type PaperUsage string

const (
	UsageBWText        PaperUsage = "B/W Text and Manga"
	UsageInternalColor PaperUsage = "Internal Color Images"
	UsageCovers        PaperUsage = "Covers"
)

// PaperStock is an immutable catalog entry describing a parent sheet.
type PaperStock struct {
	SKU          string     `json:"sku"`
	Name         string     `json:"name"`
	GSM          float64    `json:"gsm"`
	Type         PaperType  `json:"type"`
	Finish       string     `json:"finish,omitempty"`
	ParentWidth  float64    `json:"parentWidth"`
	ParentHeight float64    `json:"parentHeight"`
	CostPerSheet float64    `json:"costPerSheet"`
	Usage        PaperUsage `json:"usage"`
}

// PaperOption is a paper slot of a job that may be left empty. An empty slot
// contributes nothing to cost or spine.
type PaperOption struct {
	stock PaperStock
	ok    bool
}

// Some wraps a resolved paper stock.
func Some(p PaperStock) PaperOption { return PaperOption{stock: p, ok: true} }

// None is the empty paper slot.
func None() PaperOption { return PaperOption{} }

// Get returns the stock and whether the slot is filled.
func (o PaperOption) Get() (PaperStock, bool) { return o.stock, o.ok }

// Present reports whether the slot is filled.
func (o PaperOption) Present() bool { return o.ok }

// Papers groups the three paper slots of a job.
type Papers struct {
	BW    PaperOption
	Color PaperOption
	Cover PaperOption
}

// PrintColor selects the click rate used for covers.
type PrintColor string

const (
	PrintColorColor PrintColor = "color"
	PrintColorBW    PrintColor = "bw"
)

// LaminationType is the cover lamination finish.
type LaminationType string

const (
	LaminationNone  LaminationType = "none"
	LaminationGloss LaminationType = "gloss"
	LaminationMatte LaminationType = "matte"
)

// BindingMethod is the binding applied to the finished book.
type BindingMethod string

const (
	BindingNone         BindingMethod = "none"
	BindingPerfectBound BindingMethod = "perfectBound"
	BindingSaddleStitch BindingMethod = "saddleStitch"
)

// JobSpecification is the customer's job as submitted by the order layer.
type JobSpecification struct {
	Quantity               int            `json:"quantity"`
	FinishedWidth          float64        `json:"finishedWidth"`
	FinishedHeight         float64        `json:"finishedHeight"`
	BWPages                int            `json:"bwPages"`
	ColorPages             int            `json:"colorPages"`
	BWPaperSKU             string         `json:"bwPaperSku,omitempty"`
	ColorPaperSKU          string         `json:"colorPaperSku,omitempty"`
	CoverPaperSKU          string         `json:"coverPaperSku,omitempty"`
	HasCover               bool           `json:"hasCover"`
	CoverPrintColor        PrintColor     `json:"coverPrintColor"`
	CoverPrintsOnBothSides bool           `json:"coverPrintsOnBothSides"`
	LaminationType         LaminationType `json:"laminationType"`
	BindingMethod          BindingMethod  `json:"bindingMethod"`
}

// TotalPages returns the interior page count.
func (j JobSpecification) TotalPages() int { return j.BWPages + j.ColorPages }

// BusinessRules is the versioned production/cost configuration record.
// JSON keys follow the stored document.
type BusinessRules struct {
	Version int `json:"-"`

	ColorClickCost            float64 `json:"COLOR_CLICK_COST"`
	BWClickCost               float64 `json:"BW_CLICK_COST"`
	GlossLaminateCostPerCover float64 `json:"GLOSS_LAMINATE_COST_PER_COVER"`
	MatteLaminateCostPerCover float64 `json:"MATTE_LAMINATE_COST_PER_COVER"`
	PrintingSpeedSPM          float64 `json:"PRINTING_SPEED_SPM"`
	PerfectBinderSetupMins    float64 `json:"PERFECT_BINDER_SETUP_MINS"`
	PerfectBinderSpeedBPH     float64 `json:"PERFECT_BINDER_SPEED_BPH"`
	SaddleStitcherSetupMins   float64 `json:"SADDLE_STITCHER_SETUP_MINS"`
	SaddleStitcherSpeedBPH    float64 `json:"SADDLE_STITCHER_SPEED_BPH"`
	BasePrepTimeMins          float64 `json:"BASE_PREP_TIME_MINS"`
	WastageFactor             float64 `json:"WASTAGE_FACTOR"`
	BindingInefficiencyFactor float64 `json:"BINDING_INEFFICIENCY_FACTOR"`
	TrimmingSetupMins         float64 `json:"TRIMMING_SETUP_MINS"`
	TrimmingBooksPerCycle     float64 `json:"TRIMMING_BOOKS_PER_CYCLE"`
	TrimmingCycleTimeMins     float64 `json:"TRIMMING_CYCLE_TIME_MINS"`
	SqInchToSqMeter           float64 `json:"SQ_INCH_TO_SQ_METER"`
	GramsToLbs                float64 `json:"GRAMS_TO_LBS"`
	LaminationThicknessInches float64 `json:"LAMINATION_THICKNESS_PER_SIDE_INCHES"`
	DefaultLaborRate          float64 `json:"defaultLaborRate"`
	DefaultMarkupPercent      float64 `json:"defaultMarkupPercent"`
	DefaultSpoilagePercent    float64 `json:"defaultSpoilagePercent"`
}

// Overrides carries optional per-request replacements for rule defaults.
type Overrides struct {
	LaborRate       *float64 `json:"laborRate,omitempty"`
	MarkupPercent   *float64 `json:"markupPercent,omitempty"`
	SpoilagePercent *float64 `json:"spoilagePercent,omitempty"`
}

// Rates are the effective labor/markup/spoilage values for one calculation.
type Rates struct {
	LaborRate       float64
	MarkupPercent   float64
	SpoilagePercent float64
}

// Resolve applies overrides on top of the rule defaults.
func (r BusinessRules) Resolve(o Overrides) Rates {
	rates := Rates{
		LaborRate:       r.DefaultLaborRate,
		MarkupPercent:   r.DefaultMarkupPercent,
		SpoilagePercent: r.DefaultSpoilagePercent,
	}
	if o.LaborRate != nil {
		rates.LaborRate = *o.LaborRate
	}
	if o.MarkupPercent != nil {
		rates.MarkupPercent = *o.MarkupPercent
	}
	if o.SpoilagePercent != nil {
		rates.SpoilagePercent = *o.SpoilagePercent
	}
	return rates
}

// ComponentDetail records the sheet math for one paper component.
type ComponentDetail struct {
	Imposition  int     `json:"imposition"`
	PressSheets int     `json:"pressSheets"`
	Clicks      int     `json:"clicks"`
	PaperCost   float64 `json:"paperCost"`
	PrintCost   float64 `json:"printCost"`
}

// ProductionDetail records the time-and-motion breakdown in minutes.
type ProductionDetail struct {
	BasePrepMins     float64 `json:"basePrepMins"`
	BindingSetupMins float64 `json:"bindingSetupMins"`
	PrintingMins     float64 `json:"printingMins"`
	LaminatingMins   float64 `json:"laminatingMins"`
	BindingMins      float64 `json:"bindingMins"`
	TrimmingMins     float64 `json:"trimmingMins"`
	TotalMins        float64 `json:"totalMins"`
}

// CalculationDetails is the audit breakdown returned alongside a price.
type CalculationDetails struct {
	BWPaperThicknessInches    float64 `json:"bwPaperThicknessInches"`
	ColorPaperThicknessInches float64 `json:"colorPaperThicknessInches"`
	InternalSpineInches       float64 `json:"internalSpineInches"`
	CoverSpineAllowanceInches float64 `json:"coverSpineAllowanceInches"`
	TotalMaterialCost         float64 `json:"totalMaterialCost"`
	TotalPrintCost            float64 `json:"totalPrintCost"`

	LaminationCost  float64          `json:"laminationCost"`
	LaborCost       float64          `json:"laborCost"`
	Subtotal        float64          `json:"subtotal"`
	MarkupAmount    float64          `json:"markupAmount"`
	LaborRate       float64          `json:"laborRate"`
	MarkupPercent   float64          `json:"markupPercent"`
	SpoilagePercent float64          `json:"spoilagePercent"`
	BW              *ComponentDetail `json:"bw,omitempty"`
	Color           *ComponentDetail `json:"color,omitempty"`
	Cover           *ComponentDetail `json:"cover,omitempty"`
	Production      ProductionDetail `json:"production"`
}

// CalculationResult is the output of a paper-physics calculation.
type CalculationResult struct {
	TotalPrice          float64            `json:"totalPrice"`
	SpineWidthInches    float64            `json:"spineWidthInches"`
	ProductionTimeHours float64            `json:"productionTimeHours"`
	Details             CalculationDetails `json:"calculationDetails"`
}

// Clock yields the current instant; delivery estimation is the only consumer.
type Clock func() time.Time
