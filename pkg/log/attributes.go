// Package log defines standard attribute keys for statistics operations.
//
// Keys follow a hierarchical naming convention (e.g. "stats.operation",
// "data.samples") so records from different packages can be filtered the
// same way.

package log

// Operation context
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "LinearRegression", "StandardScaler"
	ModelNameKey = "model.name"

	// OperationKey names the operation being performed.
	// Examples: "fit_simple", "describe", "predict"
	OperationKey = "stats.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "stats", "linear", "preprocessing"
	ComponentKey = "stats.component"
)

// Data shape
const (
	// SamplesKey is the number of observations.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of predictors (columns).
	FeaturesKey = "data.features"

	// DDOFKey is the delta degrees of freedom used for a dispersion measure.
	DDOFKey = "data.ddof"

	// RankKey is the numerical rank of a design matrix.
	RankKey = "data.rank"
)

// Results
const (
	// InterceptKey records a fitted intercept.
	InterceptKey = "model.intercept"

	// SlopesKey records fitted slope coefficients.
	SlopesKey = "model.slopes"

	// R2ScoreKey records R² coefficient of determination for regression.
	R2ScoreKey = "metrics.r2_score"

	// OutliersKey is the number of values outside the Tukey fences.
	OutliersKey = "stats.outliers"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// SuggestionKey provides a hint for resolving the issue.
	SuggestionKey = "error.suggestion"
)

// Standard attribute values.
const (
	OperationDescribe    = "describe"
	OperationFit         = "fit"
	OperationFitSimple   = "fit_simple"
	OperationFitMultiple = "fit_multiple"
	OperationPredict     = "predict"
	OperationTransform   = "transform"
	OperationScore       = "score"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInsufficientData  = "INSUFFICIENT_DATA"
	ErrorDivisionByZero    = "DIVISION_BY_ZERO"
	ErrorDegenerate        = "DEGENERATE_INPUT"
)
