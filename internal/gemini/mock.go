package gemini

import (
	"context"
	"strings"
)

const mockResumeHTML = `<div class="resume">
  <h1>Student</h1>
  <h2>Backend Developer Intern</h2>

  <div class="section">
    <h3>Education</h3>
    <p><strong>B.Tech - Computer Science and Engineering</strong><br>
    Indian Institute of Information Technology, Nagpur (2022 - 2026)</p>
  </div>

  <div class="section">
    <h3>Technical Skills</h3>
    <ul>
      <li>Backend Development: Node.js, Python, Java</li>
      <li>Databases: MongoDB, MySQL, PostgreSQL</li>
      <li>Cloud Platforms: AWS, Google Cloud</li>
      <li>Version Control: Git, GitHub</li>
    </ul>
  </div>

  <div class="section">
    <h3>Projects &amp; Experience</h3>
    <ul>
      <li>Developed scalable backend APIs using Node.js and Express</li>
      <li>Implemented database design and optimization techniques</li>
      <li>Experience with RESTful API development and testing</li>
      <li>Built full-stack applications with modern frameworks</li>
    </ul>
  </div>
</div>`

const mockCoverLetterHTML = `<div class="cover-letter">
  <p>Dear Hiring Team,</p>

  <p>I am writing to express my strong interest in the advertised position. As a computer science student, I am excited about the opportunity to contribute to your technology team.</p>

  <p>My academic background, combined with hands-on experience in backend development, aligns well with your requirements. I have worked on several projects involving API development, database design, and cloud deployment, which has given me a solid foundation.</p>

  <p>I would welcome the opportunity to discuss how my technical skills and enthusiasm can contribute to your team's success.</p>

  <p>Thank you for considering my application. I look forward to hearing from you.</p>

  <p>Sincerely,<br>Computer Science Student</p>
</div>`

const mockRedactedHTML = `<div class="resume"><p>Contact: [email protected], [phone number]</p></div>`

// MockGenerateCompletion is a deterministic stand-in for GenerateCompletion.
// It classifies the prompt by its instruction markers and returns a fixed
// canned fragment, letting the orchestrators run without live credentials.
func MockGenerateCompletion(ctx context.Context, prompt string, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_ = opts

	switch {
	case strings.Contains(prompt, "expert resume writer"):
		return mockResumeHTML, nil
	case strings.Contains(prompt, "cover letter"):
		return mockCoverLetterHTML, nil
	case strings.Contains(prompt, "email addresses and phone numbers"):
		return mockRedactedHTML, nil
	default:
		return "Mock completion response", nil
	}
}

var _ CompletionFunc = MockGenerateCompletion
