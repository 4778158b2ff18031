// Package refiner consults an external model service to refine the
// rule-based verdict of a comparison.
//
// The [Refiner] interface takes the plain-text change listing produced
// by the reporter and returns a [classifier.Verdict]. Use sites accept
// the interface, so tests substitute a stub and other services can slot
// in behind the same contract.
//
// [OpenAIRefiner] is the production implementation, speaking to any
// OpenAI-style chat completions endpoint:
//
//	ref := refiner.NewOpenAI(refiner.Config{
//		APIKey: os.Getenv("OPENAI_API_KEY"),
//	})
//	verdict, err := ref.Refine(ctx, reporter.RenderRawLines(records))
//
// Two failure modes are deliberately distinct. Transport failures and
// exhausted retries return a *deltaerrors.ClassifyError, and callers
// keep the rule-based verdict; the comparison itself never fails
// because the service was unreachable. A reply that arrives but is not
// the agreed JSON object returns VerdictClassificationError with a nil
// error, since no fallback can make an unusable answer usable.
//
// The refined verdict only relabels the report headline. Categorized
// records in the report body always remain the rule-based
// classification.
package refiner
