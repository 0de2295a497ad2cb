package usecase

import (
	"bytes"
	"fmt"
	"strings"

	"movie-booking/internal/data/entity"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// Ticket is a rendered e-ticket.
type Ticket struct {
	Filename string
	Content  []byte
}

func renderTicket(issuer string, v *entity.BookingView) ([]byte, error) {
	qr, err := qrcode.Encode(v.OrderID, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, strings.ToUpper(issuer)+" E-TICKET", "", 1, "L", false, 0, "")

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(12, pdf.GetY()+2, 136, pdf.GetY()+2)
	pdf.Ln(6)

	yStart := pdf.GetY()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(80, 7, v.MovieTitle, "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		"Order: " + v.OrderID,
		"Date: " + v.ShowTime.ShowDate.Format("Mon, 02 Jan 2006"),
		fmt.Sprintf("Time: %s - %s", v.ShowTime.StartTime, v.ShowTime.EndTime),
		"Seats: " + strings.Join(v.SeatCodes(), ", "),
		fmt.Sprintf("Total: %.2f", v.TotalPrice),
	}
	for _, line := range lines {
		pdf.CellFormat(80, 7, line, "", 1, "L", false, 0, "")
	}

	pdf.RegisterImageOptionsReader("qr", gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(qr))
	pdf.ImageOptions("qr", 96, yStart, 40, 0, false, gofpdf.ImageOptions{ImageType: "png"}, 0, "")

	pdf.SetY(yStart + 62)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Show this code at the entrance.", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
