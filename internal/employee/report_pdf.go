package employee

import (
	"bytes"
	"fmt"
	"strings"
)

// buildEmployeeReportPDF renders a single-page report: employee details
// followed by the leave records of the last 30 days.
func buildEmployeeReportPDF(e Employee, leaves []RecentLeave) ([]byte, error) {
	lines := []string{
		fmt.Sprintf("Employee Report: %s", e.Name),
		"",
		fmt.Sprintf("Employee ID:   %d", e.EmpID),
		fmt.Sprintf("Email:         %s", e.Email),
		fmt.Sprintf("Department:    %s", e.Department),
		fmt.Sprintf("Designation:   %s", e.Designation),
		fmt.Sprintf("Contact:       %s", e.Contact),
		fmt.Sprintf("Leave Balance: %d", e.LeaveBalance),
		fmt.Sprintf("Leave Taken:   %d", e.LeaveTaken),
		"",
		"Leave Records (Last 30 Days)",
	}
	if !e.JoiningDate.IsZero() {
		lines = append(lines, fmt.Sprintf("Joining Date:  %s", e.JoiningDate.Format(dateLayout)))
	}

	if len(leaves) == 0 {
		lines = append(lines, "No leave records found in the last 30 days.")
	}
	for _, l := range leaves {
		lines = append(lines, fmt.Sprintf(
			"#%d  %s - %s  %d day(s)  %s",
			l.RequestID,
			l.StartDate.Format(dateLayout),
			l.EndDate.Format(dateLayout),
			l.NoOfDays,
			l.Status,
		))
	}

	return renderSimplePDF(lines)
}

func renderSimplePDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Employee Report"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
