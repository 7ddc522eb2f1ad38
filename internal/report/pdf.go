package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/signintech/gopdf"

	"patient-intake-agent/internal/booking"
	"patient-intake-agent/internal/intake"
)

const (
	pageWidth  = 595.28
	pageHeight = 841.89
	margin     = 42.0
	usable     = pageWidth - 2*margin
)

type rgb struct{ r, g, b uint8 }

var (
	blue       = rgb{45, 108, 223}
	blueLight  = rgb{235, 244, 255}
	blueMid    = rgb{219, 234, 254}
	greenDark  = rgb{6, 95, 70}
	greenLight = rgb{236, 253, 245}
	greenLine  = rgb{167, 243, 208}
	red        = rgb{239, 68, 68}
	gray900    = rgb{17, 24, 39}
	gray700    = rgb{55, 65, 81}
	gray500    = rgb{107, 114, 128}
	gray300    = rgb{209, 213, 219}
	white      = rgb{255, 255, 255}
)

// Generator renders the appointment and health summary PDF. It implements
// booking.PDFGenerator.
type Generator struct {
	log zerolog.Logger
	now func() time.Time

	// DejaVuSans covers the Latin and Devanagari ranges used in patient
	// answers. Paths cover the usual Alpine and Debian font locations.
	fontPaths []string
}

func NewGenerator(log zerolog.Logger) *Generator {
	return &Generator{
		log: log,
		now: time.Now,
		fontPaths: []string{
			"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/dejavu/DejaVuSans.ttf",
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		},
	}
}

// Generate renders the full report to PDF bytes.
func (g *Generator) Generate(patientData intake.Record, analysis intake.MedicalAnalysis, appt booking.Appointment) ([]byte, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	var fontErr error
	loaded := false
	for _, path := range g.fontPaths {
		if err := pdf.AddTTFFont("main", path); err == nil {
			loaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !loaded {
		return nil, errors.Wrap(fontErr, "load report font, ensure ttf-dejavu is installed")
	}

	g.watermark(pdf)

	y := margin
	y = g.headerBand(pdf, appt, y)
	y = g.infoCards(pdf, analysis, appt, y)
	y = g.patientStrip(pdf, patientData, appt, y)
	y = g.diagnosticPanel(pdf, analysis, y)
	y = g.testsAndSafety(pdf, analysis, y)
	y = g.checklist(pdf, analysis, y)
	g.disclaimer(pdf, analysis, y)

	out := pdf.GetBytesPdf()
	g.log.Info().Int("size", len(out)).Str("appointment_id", appt.AppointmentID).Msg("report pdf generated")
	return out, nil
}

func setFill(pdf *gopdf.GoPdf, c rgb)   { pdf.SetFillColor(c.r, c.g, c.b) }
func setText(pdf *gopdf.GoPdf, c rgb)   { pdf.SetTextColor(c.r, c.g, c.b) }
func setStroke(pdf *gopdf.GoPdf, c rgb) { pdf.SetStrokeColor(c.r, c.g, c.b) }

func (g *Generator) text(pdf *gopdf.GoPdf, x, y float64, size float64, c rgb, s string) {
	pdf.SetFont("main", "", size)
	setText(pdf, c)
	pdf.SetXY(x, y)
	pdf.Cell(nil, s)
}

// wrapped draws a paragraph wrapped to the given width and returns the y
// position after the last line.
func (g *Generator) wrapped(pdf *gopdf.GoPdf, x, y, width, size, leading float64, c rgb, s string) float64 {
	pdf.SetFont("main", "", size)
	setText(pdf, c)
	lines, err := pdf.SplitText(s, width)
	if err != nil {
		lines = []string{s}
	}
	for _, line := range lines {
		pdf.SetXY(x, y)
		pdf.Cell(nil, line)
		y += leading
	}
	return y
}

func (g *Generator) cardBox(pdf *gopdf.GoPdf, x, y, w, h float64, fill, border rgb) {
	setFill(pdf, fill)
	pdf.RectFromUpperLeftWithStyle(x, y, w, h, "F")
	setStroke(pdf, border)
	pdf.SetLineWidth(0.8)
	pdf.RectFromUpperLeftWithStyle(x, y, w, h, "D")
}

func (g *Generator) watermark(pdf *gopdf.GoPdf) {
	pdf.SetFont("main", "", 55)
	pdf.SetTextColor(225, 232, 248)
	width, _ := pdf.MeasureTextWidth("AMRUTHA AI")
	pdf.Rotate(40, pageWidth/2, pageHeight/2)
	pdf.SetXY(pageWidth/2-width/2, pageHeight/2-27)
	pdf.Cell(nil, "AMRUTHA AI")
	pdf.RotateReset()
}

func (g *Generator) headerBand(pdf *gopdf.GoPdf, appt booking.Appointment, y float64) float64 {
	const h = 64.0
	setFill(pdf, blue)
	pdf.RectFromUpperLeftWithStyle(margin, y, usable, h, "F")

	g.text(pdf, margin+14, y+12, 18, white, "Appointment & Health Summary")
	meta := fmt.Sprintf("Report ID: #%s  •  %s", appt.AppointmentID, g.now().Format("Jan 02, 2006"))
	g.text(pdf, margin+14, y+38, 9, rgb{203, 213, 225}, meta)
	return y + h + 8
}

func (g *Generator) infoCards(pdf *gopdf.GoPdf, analysis intake.MedicalAnalysis, appt booking.Appointment, y float64) float64 {
	const h = 88.0
	cardW := usable/2 - 3
	leftX := margin
	rightX := margin + usable/2 + 3

	g.cardBox(pdf, leftX, y, cardW, h, white, gray300)
	g.cardBox(pdf, rightX, y, cardW, h, white, gray300)

	dr := analysis.DoctorRecommendation
	doctorName := dr.DoctorName
	if doctorName == "" {
		doctorName = appt.DoctorName
	}
	specialist := dr.DoctorExpertise
	if specialist == "" {
		specialist = appt.DoctorSpecialist
	}

	g.text(pdf, leftX+12, y+10, 7, gray500, "ASSIGNED SPECIALIST")
	g.wrapped(pdf, leftX+12, y+26, cardW-24, 11, 14, gray900, doctorName)
	g.text(pdf, leftX+12, y+56, 9, blue, specialist)
	g.text(pdf, leftX+12, y+70, 9, gray700, "MD, FACC • 10+ Years Exp.")

	apptTime := dr.AppointmentSlot
	if apptTime == "" {
		apptTime = appt.AppointmentTime
	}
	dateLine, timeLine := splitAppointmentTime(apptTime)

	g.text(pdf, rightX+12, y+10, 7, gray500, "APPOINTMENT TIME")
	g.wrapped(pdf, rightX+12, y+26, cardW-24, 11, 14, gray900, dateLine)
	if timeLine != "" {
		g.text(pdf, rightX+12, y+54, 13, gray900, timeLine)
	}
	return y + h + 8
}

// splitAppointmentTime formats a "2006-01-02 15:04" value into separate date
// and clock lines, and passes through slot labels like "Morning (9 AM - 12 PM)".
func splitAppointmentTime(v string) (string, string) {
	if dt, err := time.Parse("2006-01-02 15:04", v); err == nil {
		return dt.Format("Jan 02, 2006"), dt.Format("03:04 PM")
	}
	return v, ""
}

func (g *Generator) patientStrip(pdf *gopdf.GoPdf, rec intake.Record, appt booking.Appointment, y float64) float64 {
	const h = 52.0
	g.cardBox(pdf, margin, y, usable, h, white, gray300)

	field := func(v string) string {
		if v == "" {
			return "N/A"
		}
		return v
	}

	colW := usable * 0.27
	labels := []string{"PATIENT", "AGE/SEX", "BLOOD"}
	values := []string{
		field(rec.String("name")),
		fmt.Sprintf("%s / %s", field(rec.String("age")), field(rec.String("gender"))),
		field(rec.String("blood_group")),
	}
	for i := range labels {
		x := margin + 12 + float64(i)*colW
		g.text(pdf, x, y+10, 7, gray500, labels[i])
		g.text(pdf, x, y+26, 11, gray900, values[i])
	}

	if appt.Urgency == "High" {
		g.text(pdf, margin+usable-110, y+20, 8, red, "! HIGH URGENCY")
	}
	return y + h + 8
}

func (g *Generator) diagnosticPanel(pdf *gopdf.GoPdf, analysis intake.MedicalAnalysis, y float64) float64 {
	diag := analysis.AIDiagnosticSummary
	explanation := diag.Explanation
	if explanation == "" {
		explanation = analysis.PatientSummary
	}
	conditions := diag.PossibleConditions
	if len(conditions) == 0 {
		conditions = analysis.PossibleConditions
	}

	// Measure content first so the card box fits it.
	startY := y
	contentY := y + 24

	pdf.SetFont("main", "", 9)
	lineCount := func(s string, w float64) int {
		lines, err := pdf.SplitText(s, w)
		if err != nil {
			return 1
		}
		return len(lines)
	}
	innerW := usable - 24
	h := 34.0
	if explanation != "" {
		h += float64(lineCount(`"`+explanation+`"`, innerW)) * 13
	}
	if len(conditions) > 0 {
		h += float64(lineCount("Possible Conditions: "+strings.Join(conditions, ", "), innerW))*13 + 4
	}
	if diag.RiskInterpretation != "" {
		h += float64(lineCount("Risk Interpretation: "+diag.RiskInterpretation, innerW))*13 + 4
	}

	g.cardBox(pdf, margin, startY, usable, h, blueLight, blueMid)
	g.text(pdf, margin+12, startY+8, 10, blue, "AI DIAGNOSTIC SUMMARY")

	if explanation != "" {
		contentY = g.wrapped(pdf, margin+12, contentY, innerW, 9, 13, gray700, `"`+explanation+`"`)
	}
	if len(conditions) > 0 {
		contentY += 4
		contentY = g.wrapped(pdf, margin+12, contentY, innerW, 9, 13, gray700,
			"Possible Conditions: "+strings.Join(conditions, ", "))
	}
	if diag.RiskInterpretation != "" {
		contentY += 4
		g.wrapped(pdf, margin+12, contentY, innerW, 9, 13, gray700,
			"Risk Interpretation: "+diag.RiskInterpretation)
	}
	return startY + h + 8
}

func (g *Generator) testsAndSafety(pdf *gopdf.GoPdf, analysis intake.MedicalAnalysis, y float64) float64 {
	const h = 150.0
	cardW := usable/2 - 3
	leftX := margin
	rightX := margin + usable/2 + 3

	g.cardBox(pdf, leftX, y, cardW, h, white, gray300)
	g.cardBox(pdf, rightX, y, cardW, h, white, gray300)

	g.text(pdf, leftX+12, y+8, 10, blue, "BASIC TESTS TO BE DONE")
	rowY := y + 26
	if len(analysis.RecommendedBasicTests) == 0 {
		g.text(pdf, leftX+12, rowY, 9, gray700, "No specific tests recommended.")
	}
	for i, t := range analysis.RecommendedBasicTests {
		if i >= 6 || rowY > y+h-16 {
			break
		}
		g.text(pdf, leftX+12, rowY, 9, gray900, t.TestName)
		if t.Category != "" {
			g.text(pdf, leftX+cardW-90, rowY+1, 7, gray500, strings.ToUpper(t.Category))
		}
		setStroke(pdf, gray300)
		pdf.SetLineWidth(0.5)
		pdf.Line(leftX+12, rowY+14, leftX+cardW-12, rowY+14)
		rowY += 20
	}

	g.text(pdf, rightX+12, y+8, 10, blue, "SAFETY & PRECAUTIONS")
	items := analysis.SafetyPrecautions
	if len(items) == 0 {
		items = analysis.Precautions
	}
	items = append(items, analysis.LifestyleRecommendations...)
	if len(items) > 6 {
		items = items[:6]
	}
	rowY = y + 26
	if len(items) == 0 {
		g.text(pdf, rightX+12, rowY, 9, gray700, "No specific precautions noted.")
	}
	for _, item := range items {
		rowY = g.wrapped(pdf, rightX+12, rowY, cardW-24, 9, 13, gray700, "• "+item)
		if rowY > y+h-14 {
			break
		}
	}
	return y + h + 8
}

func (g *Generator) checklist(pdf *gopdf.GoPdf, analysis intake.MedicalAnalysis, y float64) float64 {
	items := analysis.NextStepsChecklist
	if len(items) == 0 {
		items = []string{
			"Complete blood work before appointment",
			"Share medical history with doctor",
			"Monitor symptoms and log daily",
		}
	}

	h := 30.0 + float64(len(items))*14
	g.cardBox(pdf, margin, y, usable, h, greenLight, greenLine)
	g.text(pdf, margin+12, y+8, 10, greenDark, "NEXT STEPS CHECKLIST")

	rowY := y + 26
	for _, item := range items {
		rowY = g.wrapped(pdf, margin+16, rowY, usable-32, 9, 14, greenDark, "[ ]  "+item)
	}
	return y + h + 12
}

func (g *Generator) disclaimer(pdf *gopdf.GoPdf, analysis intake.MedicalAnalysis, y float64) {
	disclaimer := analysis.Disclaimer
	if disclaimer == "" {
		disclaimer = "This is a digitally generated health summary for informational purposes. " +
			"In case of emergency, please visit the nearest hospital."
	}
	if len(disclaimer) > 300 {
		disclaimer = disclaimer[:297] + "..."
	}

	setStroke(pdf, gray300)
	pdf.SetLineWidth(0.5)
	pdf.Line(margin, y, margin+usable, y)
	g.wrapped(pdf, margin, y+8, usable, 8, 11, gray500, disclaimer)
}
