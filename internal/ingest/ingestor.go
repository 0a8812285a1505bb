package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/saulo-duarte/binary-brain/internal/answer"
	"github.com/saulo-duarte/binary-brain/internal/config"
	"github.com/saulo-duarte/binary-brain/internal/metrics"
	"github.com/saulo-duarte/binary-brain/internal/quiz"
	"github.com/saulo-duarte/binary-brain/internal/tabular"
	"github.com/sirupsen/logrus"
)

const (
	MsgUnsupportedType = "unsupported file type"
	MsgEmptyFile       = "file is empty or has no valid data"
	MsgTooFewColumns   = "file must have at least 2 columns (question, answer)"
	MsgNoValidQuestion = "no valid questions found"
)

var allowedTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

var allowedExtensions = map[string]bool{
	".csv":  true,
	".xls":  true,
	".xlsx": true,
}

type Config struct {
	MaxFileSize int64
	Separator   rune
}

type Ingestor interface {
	Ingest(ctx context.Context, src Source) FileUploadResult
}

type ingestor struct {
	cfg Config
}

func NewIngestor(cfg Config) Ingestor {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = config.DefaultMaxFileSize
	}
	if cfg.Separator == 0 {
		cfg.Separator = tabular.DefaultSeparator
	}
	return &ingestor{cfg: cfg}
}

// Ingest validates, parses and normalizes a question file. Every failure is reported in
// the result; nothing is returned as an error.
func (i *ingestor) Ingest(ctx context.Context, src Source) (result FileUploadResult) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"file_name": src.Name(),
		"file_size": src.Size(),
	})

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Panic while parsing question file: %v", r)
			result = failure(fmt.Sprintf("unexpected error while parsing file: %v", r))
		}
		metrics.ObserveIngestion(result.Success, len(result.Questions))
	}()

	var errs []string
	errs = append(errs, i.validateSize(src)...)
	errs = append(errs, validateType(src)...)
	if len(errs) > 0 {
		log.WithField("errors", errs).Warn("Question file rejected")
		return failure(errs...)
	}

	rows, err := i.parse(src)
	if err != nil {
		log.WithError(err).Error("Failed to parse question file")
		return failure(err.Error())
	}

	result = buildQuestions(rows)
	if result.Success {
		log.WithFields(logrus.Fields{
			"questions": len(result.Questions),
			"format":    result.Format,
		}).Info("Question file ingested")
	} else {
		log.WithField("errors", result.Errors).Warn("Question file has no usable questions")
	}
	return result
}

func (i *ingestor) validateSize(src Source) []string {
	if src.Size() > i.cfg.MaxFileSize {
		return []string{TooLargeMessage(i.cfg.MaxFileSize)}
	}
	return nil
}

func TooLargeMessage(max int64) string {
	mb := int64(math.Round(float64(max) / 1024 / 1024))
	return fmt.Sprintf("file too large, maximum: %dMB", mb)
}

func validateType(src Source) []string {
	if allowedTypes[mediaType(src)] || allowedExtensions[extension(src)] {
		return nil
	}
	return []string{MsgUnsupportedType}
}

func (i *ingestor) parse(src Source) ([][]string, error) {
	raw, err := i.read(src)
	if err != nil {
		return nil, err
	}

	if isDelimited(src) {
		text := strings.TrimPrefix(string(raw), "\ufeff")
		return tabular.ParseDelimitedText(text, i.cfg.Separator), nil
	}

	rows, err := tabular.ParseSpreadsheet(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse spreadsheet: %w", err)
	}
	return rows, nil
}

func (i *ingestor) read(src Source) ([]byte, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(io.LimitReader(rc, i.cfg.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(raw)) > i.cfg.MaxFileSize {
		return nil, errors.New(TooLargeMessage(i.cfg.MaxFileSize))
	}
	return raw, nil
}

func isDelimited(src Source) bool {
	mt := mediaType(src)
	return mt == "text/csv" || mt == "application/csv" || extension(src) == ".csv"
}

func mediaType(src Source) string {
	mt := strings.ToLower(strings.TrimSpace(src.ContentType()))
	if idx := strings.Index(mt, ";"); idx >= 0 {
		mt = strings.TrimSpace(mt[:idx])
	}
	return mt
}

func extension(src Source) string {
	return strings.ToLower(filepath.Ext(src.Name()))
}

// buildQuestions turns a parsed grid into questions. Rows keep their position in the
// grid as id, so ids do not shift when earlier rows are invalid.
func buildQuestions(rows [][]string) FileUploadResult {
	if len(rows) == 0 {
		return failure(MsgEmptyFile)
	}
	if len(rows[0]) < 2 {
		return failure(MsgTooFewColumns)
	}

	answerColumn := 0
	if len(rows[0]) >= 2 {
		answerColumn = 1
	}

	var sample []string
	for _, row := range rows {
		if answerColumn < len(row) && row[answerColumn] != "" {
			sample = append(sample, row[answerColumn])
		}
	}
	format := answer.DetectFormat(sample)

	questions := []quiz.Question{}
	var invalidRows []string
	for idx, row := range rows {
		q, ok := rowQuestion(idx, row, answerColumn)
		if !ok {
			invalidRows = append(invalidRows, strconv.Itoa(idx+1))
			continue
		}
		questions = append(questions, q)
	}

	var errs []string
	if len(invalidRows) > 0 {
		errs = append(errs, "invalid rows: "+strings.Join(invalidRows, ", "))
	}

	if len(questions) == 0 {
		return failure(append(errs, MsgNoValidQuestion)...)
	}

	return FileUploadResult{
		Success:   true,
		Questions: questions,
		Errors:    errs,
		Format:    format,
	}
}

func rowQuestion(idx int, row []string, answerColumn int) (quiz.Question, bool) {
	if len(row) < 2 {
		return quiz.Question{}, false
	}

	text := strings.TrimSpace(row[0])
	token := strings.TrimSpace(row[answerColumn])
	if text == "" || token == "" {
		return quiz.Question{}, false
	}

	correct, ok := answer.Normalize(token)
	if !ok {
		return quiz.Question{}, false
	}

	return quiz.Question{
		ID:            quiz.QuestionID(idx),
		Text:          text,
		CorrectAnswer: correct,
	}, true
}
