package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders booking e-tickets and sales report exports as PDF.
type DocsService struct {
	BookingRepo   repositories.BookingRepository
	PassengerRepo repositories.PassengerRepository
	DailyRepo     repositories.DailyScheduleRepository
	ScheduleRepo  repositories.ScheduleRepository
	RouteRepo     repositories.RouteRepository
	FastboatRepo  repositories.FastboatRepository
	RequestID     string
	Loader        func(int64) (bookingDocData, error)
}

type bookingDocData struct {
	BookingID        int64
	BookingReference string
	Status           string
	ContactEmail     string
	ContactPhone     string
	DepartureCode    string
	ArrivalCode      string
	FastboatName     string
	TravelDate       string
	DepartureTime    string
	ArrivalTime      string
	TotalAmount      string
	Currency         string
	Passengers       []models.Passenger
}

func (s DocsService) GenerateETicket(bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(data)
}

func (s DocsService) loadBookingDocData(bookingID int64) (bookingDocData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	var out bookingDocData

	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return out, err
	}
	passengers, err := s.PassengerRepo.ListByBookingID(bookingID)
	if err != nil {
		return out, err
	}
	bookable, err := s.DailyRepo.GetBookable(booking.DailyScheduleID)
	if err != nil {
		return out, err
	}
	schedule, err := s.ScheduleRepo.GetByID(bookable.ScheduleID)
	if err != nil {
		return out, err
	}
	route, err := s.RouteRepo.GetByID(bookable.RouteID)
	if err != nil {
		return out, err
	}
	boat, err := s.FastboatRepo.GetByID(schedule.FastboatID)
	if err != nil {
		return out, err
	}

	out = bookingDocData{
		BookingID:        booking.ID,
		BookingReference: booking.BookingReference,
		Status:           booking.Status,
		ContactEmail:     booking.ContactEmail,
		ContactPhone:     booking.ContactPhone,
		DepartureCode:    route.DepartureCode,
		ArrivalCode:      route.ArrivalCode,
		FastboatName:     boat.Name,
		TravelDate:       bookable.TravelDate,
		DepartureTime:    schedule.DepartureTime,
		ArrivalTime:      schedule.ArrivalTime,
		TotalAmount:      utils.FormatAmount(booking.TotalAmount),
		Currency:         booking.Currency,
		Passengers:       passengers,
	}
	return out, nil
}

func buildETicketPDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET FASTBOAT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Kode Booking  : %s", safe(d.BookingReference, "-")),
		fmt.Sprintf("Status        : %s", safe(d.Status, "-")),
		fmt.Sprintf("Rute          : %s -> %s", safe(d.DepartureCode, "-"), safe(d.ArrivalCode, "-")),
		fmt.Sprintf("Kapal         : %s", safe(d.FastboatName, "-")),
		fmt.Sprintf("Tanggal       : %s", safe(d.TravelDate, "-")),
		fmt.Sprintf("Jam           : %s - %s", safe(d.DepartureTime, "-"), safe(d.ArrivalTime, "-")),
		fmt.Sprintf("Kontak        : %s / %s", safe(d.ContactEmail, "-"), safe(d.ContactPhone, "-")),
		fmt.Sprintf("Total         : %s %s", safe(d.Currency, ""), safe(d.TotalAmount, "-")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Penumpang (%d):", len(d.Passengers)))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i, p := range d.Passengers {
		doc := utils.FirstNonEmpty(p.PassportNumber, p.IDNumber, "-")
		pdf.Cell(0, 6, fmt.Sprintf("%d) %s %s  (dok: %s)", i+1, p.FirstName, p.LastName, doc))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Harap tunjukkan e-ticket ini beserta dokumen identitas saat boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s.pdf", safeFilenamePart(d.BookingReference))
	return buf.Bytes(), filename, nil
}

// GenerateSalesReportPDF renders the aggregation as a simple table.
func (s DocsService) GenerateSalesReportPDF(report SalesReport) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Sales Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "LAPORAN PENJUALAN")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Periode: %s s/d %s", report.StartDate, report.EndDate))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Dibuat: %s", time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	headers := []string{"Rute", "Booking", "Penumpang", "Pendapatan"}
	widths := []float64{80, 40, 40, 60}
	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range report.Rows {
		pdf.CellFormat(widths[0], 8, fmt.Sprintf("%s -> %s", row.DepartureCode, row.ArrivalCode), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, fmt.Sprintf("%d", row.Bookings), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 8, fmt.Sprintf("%d", row.Passengers), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 8, fmt.Sprintf("%s %s", row.Currency, row.Revenue.StringFixed(2)), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(widths[0], 8, "TOTAL", "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[1], 8, fmt.Sprintf("%d", report.TotalBookings), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[2], 8, fmt.Sprintf("%d", report.TotalPassengers), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 8, report.TotalRevenue.StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("SALES_%s_%s.pdf", report.StartDate, report.EndDate)
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func safeFilenamePart(s string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	out := replacer.Replace(strings.TrimSpace(s))
	if out == "" {
		return "dokumen"
	}
	return out
}
