package papers

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"darasa-schools/app/models"
)

// paperDocument is the data handed to the printable templates.
type paperDocument struct {
	School      *models.School
	Paper       *models.ExamPaper
	ShowAnswers bool
}

var paperTmpl = template.Must(template.New("paper").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Paper.Code}} - {{.Paper.Title}}</title>
<style>
body { font-family: "Times New Roman", serif; margin: 40px; }
.letterhead { text-align: center; border-bottom: 2px solid #000; padding-bottom: 10px; }
.letterhead h1 { margin: 0; font-size: 22px; }
.letterhead p { margin: 2px 0; font-size: 12px; }
.meta { display: flex; justify-content: space-between; margin: 15px 0; font-size: 14px; }
.instructions { font-style: italic; margin-bottom: 20px; }
.question { margin-bottom: 18px; }
.question .marks { float: right; font-size: 12px; }
.options { list-style: none; padding-left: 25px; }
.answer-space { border-bottom: 1px dotted #888; height: 24px; margin: 6px 0 0 25px; }
.essay-space { border: 1px solid #ccc; height: 180px; margin: 6px 0 0 25px; }
.answer { color: #006400; font-weight: bold; margin-left: 25px; }
</style>
</head>
<body>
<div class="letterhead">
<h1>{{.School.Name}}</h1>
{{if .School.Motto}}<p><em>{{.School.Motto}}</em></p>{{end}}
{{if .School.Address}}<p>{{.School.Address}}</p>{{end}}
{{if .School.Phone}}<p>Tel: {{.School.Phone}}{{if .School.Email}} | {{.School.Email}}{{end}}</p>{{end}}
</div>
<div class="meta">
<span><strong>{{.Paper.Title}}</strong>{{if .ShowAnswers}} (ANSWER KEY){{end}}</span>
<span>Paper: {{.Paper.Code}}</span>
<span>Marks: {{.Paper.TotalMarks}}</span>
<span>Time: {{.Paper.DurationMinutes}} min</span>
</div>
{{if .Paper.Instructions}}<p class="instructions">{{.Paper.Instructions}}</p>{{end}}
{{range $i, $q := .Paper.Questions}}
<div class="question">
<span class="marks">[{{$q.Marks}} marks]</span>
<strong>{{inc $i}}.</strong> {{$q.QuestionText}}
{{if eq (printf "%s" $q.QuestionType) "mcq"}}
<ul class="options">
{{range $q.Options}}<li>{{.OptionLetter}}. {{.OptionText}}{{if and $.ShowAnswers .IsCorrect}} &#10003;{{end}}</li>
{{end}}</ul>
{{else if eq (printf "%s" $q.QuestionType) "true_false"}}
<ul class="options">
{{range $q.Options}}<li>&#9675; {{.OptionText}}{{if and $.ShowAnswers .IsCorrect}} &#10003;{{end}}</li>
{{end}}</ul>
{{else if eq (printf "%s" $q.QuestionType) "essay"}}
{{if $.ShowAnswers}}<p class="answer">Marked against the rubric; award up to {{$q.Marks}} marks.</p>{{else}}<div class="essay-space"></div>{{end}}
{{else}}
{{if $.ShowAnswers}}<p class="answer">Accept any correct response; award up to {{$q.Marks}} marks.</p>{{else}}<div class="answer-space"></div>
<div class="answer-space"></div>{{end}}
{{end}}
</div>
{{end}}
<p style="text-align:center; margin-top:30px;">*** END ***</p>
</body>
</html>
`))

// BuildPaperDocument renders the printable HTML for a paper, or its answer
// key when showAnswers is set. The paper must carry its questions in paper
// order with options loaded.
func BuildPaperDocument(school *models.School, paper *models.ExamPaper, showAnswers bool) (string, error) {
	var buf bytes.Buffer
	doc := paperDocument{School: school, Paper: paper, ShowAnswers: showAnswers}
	if err := paperTmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render paper %s: %v", paper.Code, err)
	}
	return buf.String(), nil
}

// WriteDocumentFile persists a rendered document under dir with a unique
// name, using a temp file and rename so a crash never leaves a partial
// document behind.
func WriteDocumentFile(dir, code string, kind models.GeneratedDocKind, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("paper_%s_%s.html", code, uuid.New().String())
	if kind == models.DocAnswerKey {
		name = fmt.Sprintf("answer_key_%s_%s.html", code, uuid.New().String())
	}
	finalPath := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	return finalPath, nil
}
