package prompts

import "strings"

// ResumeData is the canonical resume shape fed into prompt building.
// FullText is the raw extracted text; the named fields are optional hints.
type ResumeData struct {
	Name       string
	Contact    string
	Summary    string
	Experience string
	Education  string
	Skills     string
	FullText   string
}

// JobData is the canonical job-posting shape fed into prompt building.
type JobData struct {
	Title        string
	Company      string
	Requirements string
	Description  string
	FullText     string
}

// BuildResumePrompt returns the instruction text for tailoring a resume to a
// job posting. The embedded texts are included verbatim; output format is
// enforced by instruction so the result can be embedded as HTML without
// post-processing.
func BuildResumePrompt(resume ResumeData, job JobData) string {
	var b strings.Builder
	b.WriteString(`You are an expert resume writer and ATS optimization specialist. Your task is to tailor a resume for a specific job posting while maintaining 100% accuracy of existing information.

CRITICAL RULES:
1. NEVER invent, add, or fabricate any dates, company names, job titles, or personal information
2. ONLY use information that already exists in the original resume
3. Optimize keyword matching with the job posting
4. Convert prose paragraphs to concise bullet points where appropriate
5. Emphasize relevant experience and skills that match the job requirements
6. Output clean HTML that renders well in browsers and is ATS-friendly

ORIGINAL RESUME:
`)
	b.WriteString(resume.FullText)
	b.WriteString(`

JOB POSTING:
`)
	b.WriteString(job.FullText)
	b.WriteString(`

TASK:
Tailor the resume above for this specific job posting. Focus on:
- Highlighting relevant keywords from the job posting
- Reordering sections to emphasize the most relevant experience first
- Converting descriptions to bullet points with action verbs
- Ensuring ATS compatibility with proper HTML structure

OUTPUT FORMAT:
Return clean HTML with semantic structure:
- Use <h1> for name, <h2> for section headers, <h3> for job titles
- Use <ul> and <li> for lists and achievements
- Include contact information if present in original
- Use <div class="section"> for major sections
- Include <div class="summary"> for professional summary if applicable

OUTPUT ONLY THE HTML, NO EXPLANATIONS:`)
	return b.String()
}

// BuildCoverLetterPrompt returns the instruction text for writing a cover
// letter grounded in the resume and job posting.
func BuildCoverLetterPrompt(resume ResumeData, job JobData) string {
	var b strings.Builder
	b.WriteString(`You are an expert cover letter writer. Create a compelling, personalized cover letter that connects the candidate's background to the specific job opportunity.

CRITICAL RULES:
1. NEVER invent personal details, company names, or specific experiences not in the resume
2. Use only information that exists in the provided resume
3. Match the tone to the job posting and company culture
4. Keep it concise (3-4 paragraphs maximum)
5. Include specific keywords from the job posting
6. End with a strong call to action

CANDIDATE RESUME:
`)
	b.WriteString(resume.FullText)
	b.WriteString(`

JOB POSTING:
`)
	b.WriteString(job.FullText)
	b.WriteString(`

TASK:
Write a compelling cover letter that:
- Opens with enthusiasm for the specific role and company
- Highlights 2-3 most relevant experiences/skills from the resume
- Connects candidate's background to job requirements
- Shows genuine interest in the company/role
- Closes with next steps

OUTPUT FORMAT:
Return clean HTML formatted cover letter:
- Use <div class="cover-letter"> wrapper
- Use <p> tags for paragraphs
- Include proper salutation and closing
- Use <strong> for emphasis sparingly

OUTPUT ONLY THE HTML, NO EXPLANATIONS:`)
	return b.String()
}

// BuildRedactionPrompt returns the instruction text for replacing contact
// details in HTML with fixed placeholders.
func BuildRedactionPrompt(html string) string {
	var b strings.Builder
	b.WriteString(`Remove all email addresses and phone numbers from the following HTML content. Replace them with placeholder text.

RULES:
1. Replace email addresses with "[email protected]"
2. Replace phone numbers with "[phone number]"
3. Preserve all HTML structure and formatting
4. Do not modify any other content

HTML CONTENT:
`)
	b.WriteString(html)
	b.WriteString(`

OUTPUT ONLY THE MODIFIED HTML:`)
	return b.String()
}
