// Package invoice строит PDF-счёт как чистую проекцию заказа.
// Никакого внешнего состояния: одинаковый вход даёт байт-в-байт одинаковый
// документ (метаданные документа закрепляются временем создания заказа).
package invoice

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/odyostore/backoffice/internal/domain"
)

const (
	headerTitle = "FATURA"
	// Плейсхолдер для незаполненных полей клиента.
	unknownPlaceholder = "Bilinmiyor"
	emptyPlaceholder   = "-"
)

// Render формирует PDF-счёт по денормализованному представлению заказа.
func Render(view domain.OrderView) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Закрепляем метаданные по данным заказа, а не по wall clock,
	// иначе повторный рендер того же заказа давал бы другие байты.
	pdf.SetCreationDate(view.CreatedAt)
	pdf.SetModificationDate(view.CreatedAt)
	pdf.SetTitle(fmt.Sprintf("Fatura %s", view.ID), false)
	pdf.AddPage()

	// Единственное начертание шрифта на весь документ: словарь ресурсов
	// страницы пишется в порядке обхода map, и второе начертание делало бы
	// вывод недетерминированным. Акценты задаются размером.
	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 10, headerTitle, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	writeLine(pdf, fmt.Sprintf("Siparis No: %s", view.ID))
	writeLine(pdf, fmt.Sprintf("Tarih: %s", view.CreatedAt.UTC().Format("02.01.2006 15:04")))
	writeLine(pdf, fmt.Sprintf("Musteri: %s", orPlaceholder(view.Customer.CompanyName, unknownPlaceholder)))
	writeLine(pdf, fmt.Sprintf("UTS No: %s", orPlaceholder(view.Customer.RegistryNumber, emptyPlaceholder)))
	pdf.Ln(4)

	writeLine(pdf, "Urunler:")
	for i, item := range view.ItemViews {
		extension := item.Product.PriceMinor * int64(item.Quantity)
		writeLine(pdf, fmt.Sprintf(
			"%d) %s x %d - %s TL",
			i+1,
			orPlaceholder(item.Product.Name, unknownPlaceholder),
			item.Quantity,
			formatMinor(extension),
		))
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 14)
	writeLine(pdf, fmt.Sprintf("Toplam Tutar: %s TL", formatMinor(view.TotalPriceMinor)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeLine(pdf *fpdf.Fpdf, text string) {
	pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

// formatMinor печатает сумму в минорных единицах как десятичные лиры.
func formatMinor(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
