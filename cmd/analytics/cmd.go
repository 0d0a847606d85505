package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/Spok95/school-analytics/internal/app"
	"github.com/Spok95/school-analytics/internal/config"
	"github.com/Spok95/school-analytics/internal/dashboard"
	"github.com/Spok95/school-analytics/internal/export"
	"github.com/Spok95/school-analytics/internal/jobs"
	"github.com/Spok95/school-analytics/internal/kvstore"
	"github.com/Spok95/school-analytics/internal/loader"
	"github.com/Spok95/school-analytics/internal/logging"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	cfg    *config.Config
	log    *logging.Log
	store  *kvstore.Handle
	loader *loader.Loader
	opts   dashboard.Options
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  serve                          - HTTP API, metrics and periodic refresh (default)")
	fmt.Fprintln(cli.out, "  export -out FILE -school NAME  - write the analytics workbook")
	fmt.Fprintln(cli.out, "  migrate-status                 - load every collection once and print sizes")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return cli.serve(ctx)
	}

	exportCmd := flag.NewFlagSet("export", flag.ContinueOnError)
	exportCmd.SetOutput(cli.out)
	exportOut := exportCmd.String("out", "", "Path of the .xlsx file; a temp file is used when empty.")
	exportSchool := exportCmd.String("school", cli.cfg.SchoolName, "School name for the file name (SCHOOL_NAME by default).")

	switch args[1] {
	case "serve":
		return cli.serve(ctx)
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.export(ctx, *exportOut, *exportSchool)
	case "migrate-status":
		return cli.migrateStatus(ctx)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) serve(ctx context.Context) error {
	snap := jobs.NewSnapshotter(cli.loader, cli.opts)
	runner := jobs.New(ctx, cli.log.Component("jobs"))
	runner.Every(cli.cfg.RefreshInterval, "dashboard_refresh", snap.Refresh)

	app.StartHTTP(ctx, cli.cfg.HTTPAddr, cli.httpDeps(snap))
	cli.log.Base.Info("analytics started",
		zap.String("addr", cli.cfg.HTTPAddr),
		zap.String("backend", cli.store.Backend),
		zap.Duration("refresh", cli.cfg.RefreshInterval))

	<-ctx.Done()
	cli.log.Base.Info("shutting down")
	return nil
}

func (cli *commandLine) httpDeps(snap *jobs.Snapshotter) app.Deps {
	return app.Deps{
		Store:    cli.store.Store,
		Loader:   cli.loader,
		Snapshot: snap,
		Log:      cli.log.Component("http"),
		School:   cli.cfg.SchoolName,
	}
}

func (cli *commandLine) export(ctx context.Context, out, school string) error {
	opts := cli.opts
	opts.Now = time.Now()
	d := dashboard.Build(ctx, cli.loader, opts)

	wb, err := export.NewDashboardWorkbook(d)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer func() { _ = wb.Close() }()

	path := out
	if path == "" {
		if school != "" {
			path = export.BuildDashboardFilename(school, opts.Now)
			err = wb.SaveAs(path)
		} else {
			path, err = wb.SaveTemp()
		}
	} else {
		err = wb.SaveAs(path)
	}
	if err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	fmt.Fprintln(cli.out, path)
	return nil
}

func (cli *commandLine) migrateStatus(ctx context.Context) error {
	s := cli.loader.Snapshot(ctx)
	fmt.Fprintf(cli.out, "%s: %d\n", kvstore.KeyStudents, len(s.Students))
	fmt.Fprintf(cli.out, "%s: %d\n", kvstore.KeyTeachers, len(s.Teachers))
	fmt.Fprintf(cli.out, "%s: %d\n", kvstore.KeyLessonPlans, len(s.LessonPlans))
	fmt.Fprintf(cli.out, "%s: %d roles\n", kvstore.KeyAttendanceRecords, len(s.AttendanceRecords))
	fmt.Fprintf(cli.out, "%s: %d days\n", kvstore.KeyAttendance, len(s.Attendance))
	return nil
}
