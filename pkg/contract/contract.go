package contract

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"car-rental/pkg/model"

	"github.com/go-pdf/fpdf"
)

// Filename is the name of the rendered contract inside a rental folder
const Filename = "contract.pdf"

const dateLayout = "2006-01-02"

// Data is everything printed on the contract
type Data struct {
	Company   string
	Rental    model.Rental
	Packet    model.CustomerPacket
	IssuedAt  time.Time
	Terms     []string
	Signature bool // leave signature lines for the renter
}

// DefaultTerms are printed when Data.Terms is empty
var DefaultTerms = []string{
	"The renter must hold a valid driver's license for the whole rental period. Only the drivers listed above may drive the vehicle.",
	"The renter's own insurance is primary for any loss or damage to the vehicle during the rental period.",
	"The vehicle must be returned with the same fuel level it was picked up with, otherwise refueling is charged at cost.",
	"Smoking and pets are not allowed in the vehicle. Cleaning fees apply.",
	"Tolls, parking tickets and traffic violations incurred during the rental are the renter's responsibility.",
	"Late returns are charged at the daily rate for each day or part of a day.",
}

var amountPattern = regexp.MustCompile(`[0-9]+(?:\.[0-9]{1,2})?`)

// Days counts rental days, at least one
func Days(start, end string) int {
	s, err1 := time.Parse(dateLayout, start)
	e, err2 := time.Parse(dateLayout, end)
	if err1 != nil || err2 != nil || !e.After(s) {
		return 1
	}
	return int(e.Sub(s).Hours() / 24)
}

// EstimatedTotal multiplies the first amount found in costPerDay by days.
// It reports false when costPerDay carries no amount, e.g. "call for price".
func EstimatedTotal(costPerDay string, days int) (float64, bool) {
	m := amountPattern.FindString(strings.ReplaceAll(costPerDay, ",", ""))
	if m == "" {
		return 0, false
	}
	rate, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return rate * float64(days), true
}

// Render produces the contract PDF
func Render(data Data) ([]byte, error) {
	if data.IssuedAt.IsZero() {
		data.IssuedAt = time.Now()
	}
	if len(data.Terms) == 0 {
		data.Terms = DefaultTerms
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle(fmt.Sprintf("Rental agreement %s", data.Rental.FolderID), true)
	pdf.SetAuthor(data.Company, true)
	pdf.SetCreator(data.Company, true)
	pdf.SetCreationDate(data.IssuedAt)
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Agreement %s  -  page %d/{nb}", data.Rental.FolderID, pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, tr(data.Company), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Vehicle Rental Agreement", "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Issued "+data.IssuedAt.Format("January 2, 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	r := data.Rental
	section(pdf, "Vehicle")
	row(pdf, tr, "Vehicle", strings.TrimSpace(strings.Join([]string{r.Color, r.Make, r.Model}, " ")))
	row(pdf, tr, "VIN", r.VIN)
	row(pdf, tr, "License plate", r.LicensePlate)

	days := Days(r.StartDate, r.EndDate)
	section(pdf, "Rental period")
	row(pdf, tr, "Pickup", r.StartDate)
	row(pdf, tr, "Return", r.EndDate)
	row(pdf, tr, "Days", strconv.Itoa(days))
	row(pdf, tr, "Rate", r.CostPerDay)
	if total, ok := EstimatedTotal(r.CostPerDay, days); ok {
		row(pdf, tr, "Estimated total", fmt.Sprintf("$%.2f", total))
	}

	renter := data.Packet.Renter
	section(pdf, "Renter")
	person(pdf, tr, renter)

	for i, d := range data.Packet.AdditionalDrivers {
		section(pdf, fmt.Sprintf("Additional driver %d", i+1))
		person(pdf, tr, d)
	}

	ins := data.Packet.Insurance
	section(pdf, "Insurance")
	row(pdf, tr, "Company", ins.Company)
	row(pdf, tr, "Policy number", ins.PolicyNumber)
	row(pdf, tr, "Expires", ins.Expiry)

	section(pdf, "Terms")
	pdf.SetFont("Helvetica", "", 9)
	for i, term := range data.Terms {
		pdf.MultiCell(0, 4.5, tr(fmt.Sprintf("%d. %s", i+1, term)), "", "L", false)
		pdf.Ln(1)
	}

	if data.Signature {
		pdf.Ln(10)
		signatureLine(pdf, tr, "Renter: "+renter.FullName())
		pdf.Ln(8)
		signatureLine(pdf, tr, "For "+data.Company)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render contract: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(0, 7, title, "", 1, "L", true, 0, "")
	pdf.Ln(1)
}

func row(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	if value == "" {
		return
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(45, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
}

func person(pdf *fpdf.Fpdf, tr func(string) string, p model.Person) {
	row(pdf, tr, "Name", p.FullName())
	row(pdf, tr, "Date of birth", p.DateOfBirth)
	address := strings.TrimSpace(strings.Join([]string{p.Address, p.City, p.State, p.Zip}, " "))
	row(pdf, tr, "Address", address)
	row(pdf, tr, "Phone", p.Phone)
	row(pdf, tr, "Email", p.Email)
	license := p.LicenseNumber
	if p.LicenseState != "" {
		license += " (" + p.LicenseState + ")"
	}
	row(pdf, tr, "License", license)
	row(pdf, tr, "License expires", p.LicenseExpiry)
}

func signatureLine(pdf *fpdf.Fpdf, tr func(string) string, label string) {
	x, y := pdf.GetXY()
	pdf.Line(x, y+8, x+90, y+8)
	pdf.Line(x+110, y+8, x+160, y+8)
	pdf.SetY(y + 9)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(110, 5, tr(label), "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 5, "Date", "", 1, "L", false, 0, "")
}
