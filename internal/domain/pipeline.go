package domain

// PipelineStage groups the enrollments currently sitting in a stage.
type PipelineStage struct {
	Stage     Stage
	Employees []OffboardingEmployee
}
