package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Federal income tax only; no state or local taxes",
	"Standard deduction for the filing status; no itemized deductions",
	"Child tax credit is non-refundable and capped at income tax (simplified)",
	"Self-employment tax applies to 92.35% of net earnings, without a wage-base cap",
	"Tax line items are rounded up to the cent; quarterly splits are exact",
}
