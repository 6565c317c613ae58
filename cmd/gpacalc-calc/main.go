package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/meltforce/gpacalc/internal/gpa"
	"github.com/meltforce/gpacalc/internal/models"
)

func main() {
	quiet := flag.Bool("q", false, "print only the cumulative GPA")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gpacalc-calc [-q] SEMESTER...\n")
		fmt.Fprintf(os.Stderr, "Each SEMESTER is a comma-separated list of credits:grade pairs, e.g.\n")
		fmt.Fprintf(os.Stderr, "  gpacalc-calc 4:A,3:B+ 3:A-,3:B\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	semesters := make([]models.Semester, 0, flag.NArg())
	for i, arg := range flag.Args() {
		courses, err := models.ParseCourseList(arg)
		if err != nil {
			log.Error("invalid semester", "semester", i+1, "error", err)
			os.Exit(1)
		}
		semesters = append(semesters, models.Semester{Courses: courses})
	}

	if !*quiet {
		for i, s := range semesters {
			t := gpa.Tally(s.Courses)
			fmt.Printf("Semester %d: %.2f (%d credits)\n", i+1, gpa.Compute(s.Courses), t.Credits)
		}
	}
	fmt.Printf("CGPA: %.2f\n", gpa.ComputeCumulative(semesters))
}
