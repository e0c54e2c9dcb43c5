package handlers

import (
	"mime/multipart"
	"time"

	"github.com/spec-kit/offboarding-service/internal/api/dto"
	"github.com/spec-kit/offboarding-service/internal/domain"
	"github.com/spec-kit/offboarding-service/internal/forms"
)

func offboardingResponse(o *domain.Offboarding) dto.OffboardingResponse {
	return dto.OffboardingResponse{
		ID:          o.ID,
		Title:       o.Title,
		Description: o.Description,
		Managers:    nonNilStrings(o.Managers),
		Status:      o.Status,
		IsActive:    o.IsActive,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func stageResponse(s *domain.Stage) dto.StageResponse {
	return dto.StageResponse{
		ID:            s.ID,
		OffboardingID: s.OffboardingID,
		Title:         s.Title,
		Type:          s.Type,
		Managers:      nonNilStrings(s.Managers),
		Sequence:      s.Sequence,
		IsActive:      s.IsActive,
	}
}

func enrollmentResponse(e *domain.OffboardingEmployee) dto.EnrollmentResponse {
	return dto.EnrollmentResponse{
		ID:                 e.ID,
		EmployeeID:         e.EmployeeID,
		EmployeeName:       e.EmployeeName,
		StageID:            e.StageID,
		NoticePeriod:       e.NoticePeriod,
		Unit:               e.Unit,
		NoticePeriodStarts: dateString(e.NoticePeriodStarts),
		NoticePeriodEnds:   dateString(e.NoticePeriodEnds),
	}
}

func pipelineResponse(pipeline []domain.PipelineStage) []dto.PipelineStageResponse {
	out := make([]dto.PipelineStageResponse, 0, len(pipeline))
	for i := range pipeline {
		employees := make([]dto.EnrollmentResponse, 0, len(pipeline[i].Employees))
		for j := range pipeline[i].Employees {
			employees = append(employees, enrollmentResponse(&pipeline[i].Employees[j]))
		}
		out = append(out, dto.PipelineStageResponse{
			Stage:     stageResponse(&pipeline[i].Stage),
			Employees: employees,
		})
	}
	return out
}

func noteResponse(n *domain.Note) dto.NoteResponse {
	resp := dto.NoteResponse{
		ID:            n.ID,
		Title:         n.Title,
		Description:   n.Description,
		NoteBy:        n.NoteBy,
		EmployeeID:    n.EnrollmentID,
		Attachment:    n.Attachment,
		AttachmentIDs: nonNilStrings(n.AttachmentIDs),
		CreatedAt:     n.CreatedAt,
	}
	for _, a := range n.Attachments {
		resp.Attachments = append(resp.Attachments, dto.AttachmentResponse{
			ID:         a.ID,
			StorageKey: a.StorageKey,
			FileName:   a.FileName,
			MimeType:   a.MimeType,
			SizeBytes:  a.SizeBytes,
		})
	}
	return resp
}

func noteCreatedResponse(n *domain.Note, uploads []*multipart.FileHeader) dto.NoteCreatedResponse {
	names := make([]string, 0, len(uploads))
	for _, fh := range uploads {
		names = append(names, fh.Filename)
	}
	return dto.NoteCreatedResponse{Note: noteResponse(n), Uploads: names}
}

func taskResponse(t *domain.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:       t.ID,
		Title:    t.Title,
		StageID:  t.StageID,
		Managers: nonNilStrings(t.Managers),
		Status:   t.Status,
	}
}

func employeeTaskResponse(et *domain.EmployeeTask) dto.EmployeeTaskResponse {
	return dto.EmployeeTaskResponse{
		ID:          et.ID,
		EmployeeID:  et.EnrollmentID,
		TaskID:      et.TaskID,
		Status:      et.Status,
		Description: et.Description,
		UpdatedAt:   et.UpdatedAt,
	}
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(forms.DateLayout)
	return &s
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
