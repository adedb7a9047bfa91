package usecase

import (
	"fmt"
	"sort"

	"github.com/niholbooks/shop-bot/internal/domain"
	"github.com/niholbooks/shop-bot/pkg/e"
	"github.com/xuri/excelize/v2"
)

type statRow struct {
	label string
	count int
}

// buildStatsReport собирает сводку по продажам и поисковым запросам
// в xlsx-книгу из трёх листов: продажи по товарам, продажи по
// категориям и частота запросов.
func buildStatsReport(log *domain.AnalyticsLog, products map[int64]domain.Product) ([]byte, error) {
	const op = "buildStatsReport"

	salesByProduct := make(map[int64]int)
	salesByCategory := make(map[string]int)
	for _, o := range log.Orders {
		salesByProduct[o.ProductID]++

		// Удалённый товар не относится ни к одной категории каталога.
		if p, ok := products[o.ProductID]; ok {
			salesByCategory[p.CategoryOrDefault()]++
		} else {
			salesByCategory["Noma'lum"]++
		}
	}

	searches := make(map[string]int)
	for _, s := range log.Searches {
		searches[s.Query]++
	}

	productRows := make([]statRow, 0, len(salesByProduct))
	for id, n := range salesByProduct {
		label := fmt.Sprintf("Noma'lum (%d)", id)
		if p, ok := products[id]; ok {
			label = p.Name
		}
		productRows = append(productRows, statRow{label: label, count: n})
	}

	categoryRows := make([]statRow, 0, len(salesByCategory))
	for cat, n := range salesByCategory {
		categoryRows = append(categoryRows, statRow{label: cat, count: n})
	}

	searchRows := make([]statRow, 0, len(searches))
	for q, n := range searches {
		searchRows = append(searchRows, statRow{label: q, count: n})
	}

	book := excelize.NewFile()
	defer book.Close()

	sheets := []struct {
		name   string
		header []string
		rows   []statRow
	}{
		{"Top Kitoblar", []string{"Kitob Nomi", "Sotilgan Soni"}, productRows},
		{"Kategoriyalar", []string{"Kategoriya", "Sotilgan Soni"}, categoryRows},
		{"Qidiruvlar", []string{"Qidiruv So'zi", "Soni"}, searchRows},
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := book.SetSheetName("Sheet1", sh.name); err != nil {
				return nil, e.Wrap(op, err)
			}
		} else {
			if _, err := book.NewSheet(sh.name); err != nil {
				return nil, e.Wrap(op, err)
			}
		}

		if err := book.SetSheetRow(sh.name, "A1", &[]any{sh.header[0], sh.header[1]}); err != nil {
			return nil, e.Wrap(op, err)
		}

		sortStatRows(sh.rows)
		for j, row := range sh.rows {
			cell := fmt.Sprintf("A%d", j+2)
			if err := book.SetSheetRow(sh.name, cell, &[]any{row.label, row.count}); err != nil {
				return nil, e.Wrap(op, err)
			}
		}
	}

	buf, err := book.WriteToBuffer()
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return buf.Bytes(), nil
}

// sortStatRows упорядочивает строки по убыванию счётчика,
// при равенстве — по алфавиту, чтобы отчёт был воспроизводимым.
func sortStatRows(rows []statRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].label < rows[j].label
	})
}
