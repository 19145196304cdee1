package logslider

import (
	"math"
	"strings"

	log "github.com/s00500/env_logger"
)

func parameterProblems(p RangeParameters) (problems []string) {
	if math.IsNaN(p.MinAmount) || math.IsNaN(p.MaxAmount) || math.IsNaN(p.SliderSteps) {
		problems = append(problems, "bounds contain NaN")
	}
	if p.MaxAmount <= p.MinAmount {
		problems = append(problems, "maximum amount is not above minimum amount")
	}
	if p.SliderSteps <= 1 {
		problems = append(problems, "slider needs more than one step")
	}
	if len(problems) == 0 && p.IsDegenerate() {
		problems = append(problems, "range can not be mapped onto the slider")
	}
	return problems
}

// validateParameters only warns, a host may pass half edited values while the user is still typing.
func validateParameters(p RangeParameters) {
	for _, problem := range parameterProblems(p) {
		log.Warnf("Slider range [%v, %v] over %v steps: %s, amounts collapse to %v", p.MinAmount, p.MaxAmount, p.SliderSteps, problem, p.MinAmount)
	}
}

func describeProblems(p RangeParameters) string {
	return strings.Join(parameterProblems(p), "; ")
}
