package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gradebook/internal/services"
)

// studentPortal runs the student menu loop until logout or EOF.
func (a *App) studentPortal(ctx context.Context) {
	fmt.Fprintf(a.out, "Welcome, %s. Student Portal\n", a.username)

	for {
		fmt.Fprintf(a.out, "student %s> ", a.username)
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			fmt.Fprintln(a.out, "Available commands: results, cgpa, marksheet, logout")
		case "results":
			a.viewSemesterResults(ctx)
		case "cgpa":
			a.viewCGPA(ctx)
		case "marksheet":
			a.printMarksheet(ctx)
		case "logout":
			fmt.Fprintln(a.out, "Logging out.")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", parts[0])
		}
	}
}

func (a *App) viewSemesterResults(ctx context.Context) {
	semester, err := GetInt(a.reader, "Enter semester number", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	rows, err := a.results.SemesterResults(ctx, a.userID, semester)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No results found for this semester.")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Code\tSubject\tCredits\tMarks\tGrade")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			r.SubjectCode, r.SubjectName, r.Credits, r.Score, r.Grade)
	}
	tw.Flush()

	sgpa, err := a.results.SemesterGPA(ctx, a.userID, semester)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	cgpa, err := a.results.CumulativeGPA(ctx, a.userID)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintf(a.out, "SGPA: %.2f   CGPA: %.2f\n", sgpa, cgpa)
	a.record(ctx, a.username, a.role, fmt.Sprintf("Viewed results for semester %d.", semester))
}

func (a *App) viewCGPA(ctx context.Context) {
	cgpa, err := a.results.CumulativeGPA(ctx, a.userID)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintf(a.out, "Your CGPA is: %.2f\n", cgpa)
	a.record(ctx, a.username, a.role, "Viewed consolidated CGPA.")
}

// printMarksheet renders a plain-text marksheet for one semester.
func (a *App) printMarksheet(ctx context.Context) {
	semester, err := GetInt(a.reader, "Enter semester for marksheet", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	sheet, err := a.results.MarksheetFor(ctx, a.userID, semester)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	renderMarksheet(a.out, sheet)
	a.record(ctx, a.username, a.role, fmt.Sprintf("Generated marksheet for semester %d.", semester))
}

func renderMarksheet(w io.Writer, sheet *services.Marksheet) {
	fmt.Fprintln(w, "=== Marksheet ===")
	fmt.Fprintf(w, "Name: %s    Roll No: %s\n", sheet.Student.Name, sheet.Student.RollNo)
	fmt.Fprintf(w, "Batch: %s    Semester: %d\n", sheet.Student.Batch, sheet.Semester)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Code\tSubject\tCredits\tMarks\tGrade")
	for _, r := range sheet.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			r.SubjectCode, r.SubjectName, r.Credits, r.Score, r.Grade)
	}
	tw.Flush()

	fmt.Fprintf(w, "SGPA: %.2f    CGPA: %.2f\n", sheet.SGPA, sheet.CGPA)
}
