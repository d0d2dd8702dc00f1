package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/SAP-F-2025/question-parser-service/internal/cache"
	"github.com/SAP-F-2025/question-parser-service/internal/events"
	"github.com/SAP-F-2025/question-parser-service/internal/models"
	"github.com/SAP-F-2025/question-parser-service/internal/validator"
	"github.com/xuri/excelize/v2"
)

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatJSON = "json"

	sheetName         = "Questions"
	minOptionColumns  = 4
	contentTypeXLSX   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV    = "text/csv; charset=utf-8"
	contentTypeJSON   = "application/json"
	defaultExportName = "questions"
)

// ImportExportService moves cached question sets in and out of spreadsheets
// so they can be reviewed and corrected by hand.
type ImportExportService interface {
	// Import operations
	ImportQuestions(ctx context.Context, fileName, targetName string, r io.Reader) (*ImportResult, error)
	ImportQuestionsFromCSV(ctx context.Context, r io.Reader) ([]models.Question, error)
	ImportQuestionsFromExcel(ctx context.Context, r io.Reader) ([]models.Question, error)

	// Export operations
	ExportCached(ctx context.Context, req models.ExportRequest) (*ExportFile, error)
	ExportQuestionsToCSV(questions []models.Question) ([]byte, error)
	ExportQuestionsToExcel(questions []models.Question) ([]byte, error)
}

type importExportService struct {
	cache     cache.QuestionCache
	validator *validator.Validator
	logger    *ServiceLogger
}

func NewImportExportService(questionCache cache.QuestionCache, validator *validator.Validator, logger *slog.Logger) ImportExportService {
	return &importExportService{
		cache:     questionCache,
		validator: validator,
		logger:    NewServiceLogger(logger, LogConfig{Service: events.EventSource, Component: "import_export"}),
	}
}

// ===== IMPORT OPERATIONS =====

type ImportResult struct {
	FileName       string            `json:"filename"`
	CacheKey       string            `json:"redis_key"`
	QuestionsCount int               `json:"questions_count"`
	Questions      []models.Question `json:"questions"`
}

// ImportQuestions reads a reviewed spreadsheet and replaces the cached set of
// targetName with it. An empty targetName derives "<base>.pdf" from fileName.
func (s *importExportService) ImportQuestions(ctx context.Context, fileName, targetName string, r io.Reader) (result *ImportResult, err error) {
	op := s.logger.WithOperation(ctx, "import_questions")
	defer func() { op.LogResult("spreadsheet", fileName, err) }()

	var questions []models.Question
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		questions, err = s.ImportQuestionsFromCSV(ctx, r)
	case ".xlsx":
		questions, err = s.ImportQuestionsFromExcel(ctx, r)
	default:
		return nil, NewInputValidationError("file", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(fileName)))
	}
	if err != nil {
		return nil, err
	}

	if targetName == "" {
		targetName = strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName)) + ".pdf"
	}
	key := cache.ParsedKey(targetName)
	if err := s.cache.Put(ctx, key, questions); err != nil {
		return nil, fmt.Errorf("cache imported questions: %w", err)
	}

	return &ImportResult{
		FileName:       targetName,
		CacheKey:       key,
		QuestionsCount: len(questions),
		Questions:      questions,
	}, nil
}

func (s *importExportService) ImportQuestionsFromCSV(ctx context.Context, r io.Reader) ([]models.Question, error) {
	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, NewInputValidationError("file", fmt.Errorf("read CSV: %w", err))
	}
	return s.questionsFromRows(records)
}

func (s *importExportService) ImportQuestionsFromExcel(ctx context.Context, r io.Reader) ([]models.Question, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, NewInputValidationError("file", fmt.Errorf("open Excel file: %w", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, layoutError("file", "Excel file has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	return s.questionsFromRows(rows)
}

// layoutError reports a problem with the spreadsheet itself as a field error.
func layoutError(field, message string, value interface{}) error {
	return ValidationErrors{*NewValidationError(field, message, value)}
}

// questionsFromRows is all-or-nothing: any invalid row fails the import with
// field errors prefixed by the 1-based row number.
func (s *importExportService) questionsFromRows(rows [][]string) ([]models.Question, error) {
	if len(rows) < 2 {
		return nil, layoutError("file", "must have header row and at least one data row", len(rows))
	}

	headerMap := make(map[string]int)
	for i, header := range rows[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, col := range []string{"section", "question_text"} {
		if _, exists := headerMap[col]; !exists {
			return nil, layoutError("headers", fmt.Sprintf("missing required column: %s", col), col)
		}
	}

	questions := make([]models.Question, 0, len(rows)-1)
	var errs ValidationErrors
	for i, record := range rows[1:] {
		if isBlankRow(record) {
			continue
		}
		q := questionFromRow(record, headerMap)
		if err := s.validator.Question().ValidateQuestion(&q); err != nil {
			errs = append(errs, GetValidationErrors(err).WithPrefix(fmt.Sprintf("row %d.", i+2))...)
			continue
		}
		questions = append(questions, q)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	if len(questions) == 0 {
		return nil, NewInputValidationError("file", ErrNoQuestions)
	}
	return questions, nil
}

// ===== EXPORT OPERATIONS =====

type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

func (s *importExportService) ExportCached(ctx context.Context, req models.ExportRequest) (file *ExportFile, err error) {
	op := s.logger.WithOperation(ctx, "export_cached")
	defer func() { op.LogResult("cache_entry", req.Key, err) }()

	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}
	if req.Format == "" {
		req.Format = FormatXLSX
	}

	raw, err := s.cache.Get(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	var questions []models.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("decode cached questions: %w", err)
	}

	file = &ExportFile{FileName: exportName(req.Key) + "." + req.Format}
	switch req.Format {
	case FormatXLSX:
		file.ContentType = contentTypeXLSX
		file.Data, err = s.ExportQuestionsToExcel(questions)
	case FormatCSV:
		file.ContentType = contentTypeCSV
		file.Data, err = s.ExportQuestionsToCSV(questions)
	case FormatJSON:
		file.ContentType = contentTypeJSON
		file.Data = raw
	default:
		return nil, NewInputValidationError("format", ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (s *importExportService) ExportQuestionsToCSV(questions []models.Question) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	optionColumns := optionColumnCount(questions)
	if err := writer.Write(exportHeaders(optionColumns)); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, q := range questions {
		if err := writer.Write(questionToRow(q, optionColumns)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *importExportService) ExportQuestionsToExcel(questions []models.Question) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	optionColumns := optionColumnCount(questions)
	if err := setRow(f, 1, exportHeaders(optionColumns)); err != nil {
		return nil, err
	}
	for i, q := range questions {
		if err := setRow(f, i+2, questionToRow(q, optionColumns)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

// ===== HELPER FUNCTIONS =====

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write Excel row %d: %w", row, err)
	}
	return nil
}

func exportHeaders(optionColumns int) []string {
	headers := []string{"section", "domain", "skill", "difficulty", "type", "passage", "image_page", "question_text"}
	for i := 1; i <= optionColumns; i++ {
		headers = append(headers,
			fmt.Sprintf("option_%d_label", i),
			fmt.Sprintf("option_%d_text", i),
			fmt.Sprintf("option_%d_explanation", i),
		)
	}
	return append(headers, "correct_answer")
}

func optionColumnCount(questions []models.Question) int {
	n := minOptionColumns
	for _, q := range questions {
		n = max(n, len(q.Options))
	}
	return n
}

func questionToRow(q models.Question, optionColumns int) []string {
	row := []string{
		string(q.Section),
		deref(q.Domain),
		deref(q.Skill),
		deref(q.Difficulty),
		deref(q.Type),
		deref(q.Passage),
		deref(q.ImagePage),
		q.QuestionText,
	}
	for i := 0; i < optionColumns; i++ {
		if i < len(q.Options) {
			opt := q.Options[i]
			row = append(row, opt.Label, opt.Text, deref(opt.Explanation))
		} else {
			row = append(row, "", "", "")
		}
	}
	return append(row, deref(q.CorrectAnswer))
}

func questionFromRow(record []string, headerMap map[string]int) models.Question {
	getColumn := func(name string) string {
		if index, exists := headerMap[name]; exists && index < len(record) {
			return strings.TrimSpace(record[index])
		}
		return ""
	}

	q := models.Question{
		Section:       models.Section(getColumn("section")),
		Domain:        optional[models.Domain](getColumn("domain")),
		Skill:         optional[models.Skill](getColumn("skill")),
		Difficulty:    optional[models.Difficulty](getColumn("difficulty")),
		Type:          optional[models.QuestionType](getColumn("type")),
		Passage:       optional[string](getColumn("passage")),
		ImagePage:     optional[string](getColumn("image_page")),
		QuestionText:  getColumn("question_text"),
		CorrectAnswer: optional[string](getColumn("correct_answer")),
	}

	for i := 1; ; i++ {
		prefix := fmt.Sprintf("option_%d_", i)
		if _, exists := headerMap[prefix+"label"]; !exists {
			break
		}
		label, text := getColumn(prefix+"label"), getColumn(prefix+"text")
		if label == "" && text == "" {
			continue
		}
		q.Options = append(q.Options, models.Option{
			Label:       label,
			Text:        text,
			Explanation: optional[string](getColumn(prefix + "explanation")),
		})
	}
	return q
}

func isBlankRow(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func optional[T ~string](v string) *T {
	if v == "" {
		return nil
	}
	t := T(v)
	return &t
}

func deref[T ~string](v *T) string {
	if v == nil {
		return ""
	}
	return string(*v)
}

// exportName turns "parsed:practice test 1.pdf" into "practice test 1".
func exportName(key string) string {
	name := key
	if i := strings.Index(name, ":"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(filepath.Base(name), ".pdf")
	if name == "" || name == "." || name == "/" {
		return defaultExportName
	}
	return name
}
