package diagnosis

// Presenter is the rendering seam. The engine calls it as a consequence of
// successful transitions and assumes nothing about what the implementation
// does with the calls; the HTTP layer implements it per request, a TUI or
// browser front end could implement it directly.
type Presenter interface {
	ShowStep(step, totalSteps int, question Question)
	ShowResult(result Result, answers AnswerSet)
	ShowError(message string)
}
