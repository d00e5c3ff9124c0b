package prompts

import "strings"

// ResumeInput is the loosely-typed upstream payload for a resume: either raw
// text or a set of structured fields. Exactly one variant is expected;
// validation degrades gracefully when both or neither are set.
type ResumeInput struct {
	Text   string
	Fields *ResumeFields
}

// ResumeFields mirrors the optional structured fields of a resume payload.
type ResumeFields struct {
	Name       string
	Contact    string
	Summary    string
	Experience string
	Education  string
	Skills     string
	FullText   string
}

// JobInput is the loosely-typed upstream payload for a job posting.
type JobInput struct {
	Text   string
	Fields *JobFields
}

// JobFields mirrors the optional structured fields of a job payload.
type JobFields struct {
	Title        string
	Company      string
	Requirements string
	Description  string
	FullText     string
}

// ValidateResumeData normalizes input into a fully-populated ResumeData.
// It is total: any input produces a value, with unset fields as "".
// Rejecting genuinely empty resume content is the caller's responsibility.
func ValidateResumeData(in ResumeInput) ResumeData {
	if in.Fields == nil {
		return ResumeData{FullText: in.Text}
	}
	f := in.Fields
	out := ResumeData{
		Name:       f.Name,
		Contact:    f.Contact,
		Summary:    f.Summary,
		Experience: f.Experience,
		Education:  f.Education,
		Skills:     f.Skills,
		FullText:   f.FullText,
	}
	if out.FullText == "" {
		// Structured input without a full text degrades to the joined fields.
		out.FullText = joinNonEmpty(f.Name, f.Contact, f.Summary, f.Experience, f.Education, f.Skills)
	}
	return out
}

// ValidateJobData normalizes input into a fully-populated JobData.
// Same totality guarantee as ValidateResumeData.
func ValidateJobData(in JobInput) JobData {
	if in.Fields == nil {
		return JobData{FullText: in.Text}
	}
	f := in.Fields
	out := JobData{
		Title:        f.Title,
		Company:      f.Company,
		Requirements: f.Requirements,
		Description:  f.Description,
		FullText:     f.FullText,
	}
	if out.FullText == "" {
		out.FullText = joinNonEmpty(f.Title, f.Company, f.Requirements, f.Description)
	}
	return out
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
