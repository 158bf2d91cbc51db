package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"gradebook/internal/common"
	"gradebook/internal/models"
	"gradebook/internal/services"
)

// teacherPortal runs the teacher menu loop until logout or EOF.
func (a *App) teacherPortal(ctx context.Context) {
	fmt.Fprintf(a.out, "Welcome, %s. Teacher Portal\n", a.username)

	for {
		fmt.Fprintf(a.out, "teacher %s> ", a.username)
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
			fmt.Fprintln(a.out, "Available commands: addsubject, enter, update, delete, results, class, logout")
		case "addsubject":
			a.addSubject(ctx)
		case "enter":
			a.enterResult(ctx)
		case "update":
			a.updateResult(ctx)
		case "delete":
			a.deleteResult(ctx)
		case "results":
			a.viewTeacherResults(ctx)
		case "class":
			a.viewClassList(ctx)
		case "logout":
			fmt.Fprintln(a.out, "Logging out.")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", parts[0])
		}
	}
}

func (a *App) addSubject(ctx context.Context) {
	code, err := GetSimpleText(a.reader, "Subject code", a.out)
	if err != nil {
		return
	}
	name, err := GetSimpleText(a.reader, "Subject name", a.out)
	if err != nil {
		return
	}
	credits, err := GetInt(a.reader, "Credits", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	subj, err := a.results.AddSubject(ctx, a.userID, code, name, credits)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err.Error())
		return
	}
	fmt.Fprintln(a.out, "Subject added successfully.")
	a.record(ctx, a.username, a.role,
		fmt.Sprintf("Added subject '%s' (code=%s, credits=%d).", subj.Name, subj.Code, subj.Credits))
}

// pickResultTarget gathers the (student, subject, semester) key shared
// by the enter, update and delete flows. It shows the teacher's
// subjects so ids can be picked off the list.
func (a *App) pickResultTarget(ctx context.Context) (*models.Student, int64, int, bool) {
	username, err := GetSimpleText(a.reader, "Enter student username", a.out)
	if err != nil {
		return nil, 0, 0, false
	}
	student, err := a.results.FindStudent(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintln(a.out, "Student not found.")
			a.record(ctx, a.username, a.role,
				fmt.Sprintf("Tried to enter result for non-existent student '%s'.", username))
		} else {
			fmt.Fprintln(a.out, err.Error())
		}
		return nil, 0, 0, false
	}

	subjects, err := a.results.SubjectsOf(ctx, a.userID)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil, 0, 0, false
	}
	if len(subjects) == 0 {
		fmt.Fprintln(a.out, "No subjects. Add subjects first.")
		return nil, 0, 0, false
	}
	a.printSubjects(subjects)

	subjectID, err := GetInt(a.reader, "Enter subject id", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil, 0, 0, false
	}
	semester, err := GetInt(a.reader, "Semester number", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil, 0, 0, false
	}
	return student, int64(subjectID), semester, true
}

func (a *App) enterResult(ctx context.Context) {
	student, subjectID, semester, ok := a.pickResultTarget(ctx)
	if !ok {
		return
	}
	score, err := GetInt(a.reader, "Marks (0-100)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	_, err = a.results.EnterResult(ctx, a.userID, student.ID, subjectID, semester, score)
	switch {
	case errors.Is(err, common.ErrDuplicateResult):
		fmt.Fprintln(a.out, "Marks already entered. Use the update command instead.")
		return
	case err != nil:
		fmt.Fprintln(a.out, "Error:", err.Error())
		return
	}

	fmt.Fprintln(a.out, "Result recorded.")
	a.record(ctx, a.username, a.role,
		fmt.Sprintf("Entered marks for student_id=%d, subject_id=%d, sem=%d, marks=%d.",
			student.ID, subjectID, semester, score))
}

func (a *App) updateResult(ctx context.Context) {
	student, subjectID, semester, ok := a.pickResultTarget(ctx)
	if !ok {
		return
	}
	score, err := GetInt(a.reader, "New marks (0-100)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	_, err = a.results.UpdateResult(ctx, a.userID, student.ID, subjectID, semester, score)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		fmt.Fprintln(a.out, "No existing result. Use the enter command instead.")
		return
	case err != nil:
		fmt.Fprintln(a.out, "Error:", err.Error())
		return
	}

	fmt.Fprintln(a.out, "Result updated.")
	a.record(ctx, a.username, a.role,
		fmt.Sprintf("Updated marks for student_id=%d, subject_id=%d, sem=%d, new_marks=%d.",
			student.ID, subjectID, semester, score))
}

func (a *App) deleteResult(ctx context.Context) {
	student, subjectID, semester, ok := a.pickResultTarget(ctx)
	if !ok {
		return
	}

	err := a.results.DeleteResult(ctx, a.userID, student.ID, subjectID, semester)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		fmt.Fprintln(a.out, "No such result.")
		return
	case err != nil:
		fmt.Fprintln(a.out, "Error:", err.Error())
		return
	}

	fmt.Fprintln(a.out, "Result deleted.")
	a.record(ctx, a.username, a.role,
		fmt.Sprintf("Deleted marks for student_id=%d, subject_id=%d, sem=%d.",
			student.ID, subjectID, semester))
}

func (a *App) viewTeacherResults(ctx context.Context) {
	rows, err := a.results.ResultsForTeacher(ctx, a.userID)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No results found.")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "username\troll_no\tname\tsubj_code\tsubject\tsem\tmarks\tgrade")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			r.StudentUsername, r.RollNo, r.StudentName, r.SubjectCode, r.SubjectName,
			r.Semester, r.Score, r.Grade)
	}
	tw.Flush()
	a.record(ctx, a.username, a.role, "Viewed all results list.")
}

func (a *App) viewClassList(ctx context.Context) {
	order := services.ClassSortNone
	text, err := GetSimpleText(a.reader, "Sort by CGPA? [desc/asc/none]", a.out)
	if err != nil {
		return
	}
	switch strings.ToLower(text) {
	case "desc":
		order = services.ClassSortCGPADesc
	case "asc":
		order = services.ClassSortCGPAAsc
	}

	list, err := a.results.ClassList(ctx, order)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No students.")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "student_id\tusername\troll_no\tname\tCGPA")
	for _, row := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f\n",
			row.StudentID, row.Username, row.RollNo, row.Name, row.CGPA)
	}
	tw.Flush()
	a.record(ctx, a.username, a.role, "Viewed class list with CGPA.")
}

func (a *App) printSubjects(subjects []models.Subject) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "id\tcode\tname\tcredits")
	for _, s := range subjects {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", s.ID, s.Code, s.Name, s.Credits)
	}
	tw.Flush()
}
