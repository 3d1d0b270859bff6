package report

import (
	"bytes"
	"encoding/csv"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Renderer turns report views into downloadable text.
type Renderer interface {
	RenderBreakdown(breakdown []CategoryTotal) (string, error)
	RenderTrend(trend []MonthlySavings) (string, error)
}

type CsvRendererImpl struct {
}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

func (c *CsvRendererImpl) RenderBreakdown(breakdown []CategoryTotal) (string, error) {
	data := make([][]string, 0, len(breakdown)+2)
	data = append(data, []string{"type", "total"})
	sum := decimal.Zero
	for _, total := range breakdown {
		data = append(data, []string{total.Category, total.Total.StringFixed(2)})
		sum = sum.Add(total.Total)
	}
	data = append(data, []string{"SUM", sum.StringFixed(2)})
	return writeCsv(data)
}

func (c *CsvRendererImpl) RenderTrend(trend []MonthlySavings) (string, error) {
	data := make([][]string, 0, len(trend)+1)
	data = append(data, []string{"month", "revenue", "expenses", "savings"})
	for _, m := range trend {
		data = append(data, []string{m.Month, m.Revenue.StringFixed(2), m.Expenses.StringFixed(2), m.Savings.StringFixed(2)})
	}
	return writeCsv(data)
}

func writeCsv(data [][]string) (string, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}
