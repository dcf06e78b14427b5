package loan

// DefaultPurpose is assumed when an application omits the purpose.
const DefaultPurpose = "Personal Loan"

// Application is the immutable input to Submit. The validate tags drive
// the HTTP-layer validator; Validate below enforces the same bounds for
// non-HTTP callers and produces the typed ApplicationError.
type Application struct {
	Income         float64 `json:"income"            validate:"required,gt=0"`
	InterestRate   float64 `json:"interest_rate"     validate:"required,gt=0,lte=50"`
	LoanAmount     float64 `json:"loan_amount"       validate:"required,gt=0"`
	Age            int     `json:"age"               validate:"required,gt=18,lt=100"`
	CreditScore    float64 `json:"credit_score"      validate:"required,gte=300,lte=850"`
	MonthsEmployed int     `json:"months_employed"   validate:"gte=0"`
	DTIRatio       float64 `json:"dti_ratio"         validate:"gte=0,lte=1"`
	LoanTermMonths int     `json:"loan_term_months"  validate:"required,gt=0"`
	Purpose        string  `json:"purpose"`
}

// Validate checks every declared bound and reports all violations at
// once. A nil return means the application may be submitted.
func (a Application) Validate() error {
	var issues []FieldIssue
	add := func(field, msg string) { issues = append(issues, FieldIssue{Field: field, Message: msg}) }

	if a.Income <= 0 {
		add("income", "must be greater than 0")
	}
	if a.InterestRate <= 0 || a.InterestRate > 50 {
		add("interest_rate", "must be in (0,50]")
	}
	if a.LoanAmount <= 0 {
		add("loan_amount", "must be greater than 0")
	}
	if a.Age <= 18 || a.Age >= 100 {
		add("age", "must be between 18 and 100 exclusive")
	}
	if a.CreditScore < 300 || a.CreditScore > 850 {
		add("credit_score", "must be between 300 and 850")
	}
	if a.MonthsEmployed < 0 {
		add("months_employed", "must not be negative")
	}
	if a.DTIRatio < 0 || a.DTIRatio > 1 {
		add("dti_ratio", "must be between 0 and 1")
	}
	if a.LoanTermMonths <= 0 {
		add("loan_term_months", "must be greater than 0")
	}

	if len(issues) > 0 {
		return &ApplicationError{Issues: issues}
	}
	return nil
}

// Normalized returns a copy with defaults filled in.
func (a Application) Normalized() Application {
	if a.Purpose == "" {
		a.Purpose = DefaultPurpose
	}
	return a
}
