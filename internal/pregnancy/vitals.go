package pregnancy

// BPStatus is the discrete risk category for a blood-pressure reading.
type BPStatus string

const (
	BPCrisis   BPStatus = "crisis"
	BPHigh     BPStatus = "high"
	BPElevated BPStatus = "elevated"
	BPLow      BPStatus = "low"
	BPNormal   BPStatus = "normal"
)

// ClassifyBP maps a blood-pressure reading to its risk category. Rules are
// evaluated in priority order, first match wins. Range validation of the raw
// numbers is the caller's job.
func ClassifyBP(systolic, diastolic int) BPStatus {
	switch {
	case systolic >= 180 || diastolic >= 120:
		return BPCrisis
	case systolic >= 140 || diastolic >= 90:
		return BPHigh
	case systolic >= 130 || diastolic >= 80:
		return BPElevated
	case systolic < 90 || diastolic < 60:
		return BPLow
	default:
		return BPNormal
	}
}

// BMICategory is the discrete category for a body-mass-index value.
type BMICategory string

const (
	BMISevereUnderweight BMICategory = "severe underweight"
	BMIUnderweight       BMICategory = "underweight"
	BMINormal            BMICategory = "normal"
	BMIOverweight        BMICategory = "overweight"
	BMIObese             BMICategory = "obese"
)

// BMIResult is a computed BMI value with its category and a critical flag
// for the extremes (severe underweight, or obese at 35 and above).
type BMIResult struct {
	Value    float64     `json:"value"`
	Category BMICategory `json:"category"`
	Critical bool        `json:"critical"`
}

// BMI computes weight(kg) / height(m)^2 from a weight in kilograms and a
// height in centimeters.
func BMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}

// ClassifyBMI computes and categorizes the BMI for the given measurements.
func ClassifyBMI(weightKg, heightCm float64) BMIResult {
	bmi := BMI(weightKg, heightCm)
	var category BMICategory
	var critical bool
	switch {
	case bmi < 16.0:
		category = BMISevereUnderweight
		critical = true
	case bmi < 18.5:
		category = BMIUnderweight
	case bmi < 25.0:
		category = BMINormal
	case bmi < 30.0:
		category = BMIOverweight
	default:
		category = BMIObese
		critical = bmi >= 35.0
	}
	return BMIResult{Value: bmi, Category: category, Critical: critical}
}
