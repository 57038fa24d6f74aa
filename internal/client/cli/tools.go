package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/acadmate/internal/backup"
	"github.com/dmitrijs2005/acadmate/internal/pomodoro"
)

// now is a test seam for snapshot timestamps.
var now = time.Now

// Pomodoro shows or controls the timer. Without arguments it prints the
// current state.
func (a *App) Pomodoro(ctx context.Context, args []string) error {
	sub := "status"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "status":
	case "start", "pause", "toggle":
		if a.timer.StartPause() {
			a.println("Timer started.")
		} else {
			a.println("Timer paused.")
		}
	case "reset":
		a.timer.Reset()
	case "work":
		if err := a.timer.SwitchMode(pomodoro.Work); err != nil {
			return err
		}
	case "break":
		if err := a.timer.SwitchMode(pomodoro.Break); err != nil {
			return err
		}
	default:
		return usage("pomodoro [status|start|pause|reset|work|break]")
	}

	st := a.timer.State()
	state := "paused"
	if st.Running {
		state = "running"
	}
	a.printf("%s %s (%s, %d%% left)\n", strings.ToUpper(string(st.Mode)), st.Display(), state, int(st.Progress()*100))
	return nil
}

func (a *App) Portals(ctx context.Context, args []string) error {
	sites := a.portals.Sites()
	if len(sites) == 0 {
		a.println("No portals configured.")
		return nil
	}
	for i, s := range sites {
		a.printf("%d. %s  %s\n", i+1, s.Name, s.URL)
	}
	return nil
}

func (a *App) Open(ctx context.Context, args []string) error {
	ref := strings.Join(args, " ")
	if ref == "" {
		return usage("open <n|name>")
	}
	site, err := a.portals.Open(ctx, ref)
	if err != nil {
		return err
	}
	a.printf("Launching %s in your browser.\n", site.Name)
	return nil
}

// backupSink picks S3 when a bucket is configured, the backup directory
// otherwise.
var backupSink = func(ctx context.Context, a *App) (backup.Sink, string, error) {
	s3cfg := a.config.S3
	if s3cfg.Bucket != "" {
		sink, err := backup.NewS3Sink(ctx, backup.S3Options{
			Bucket:          s3cfg.Bucket,
			Region:          s3cfg.Region,
			Endpoint:        s3cfg.Endpoint,
			AccessKeyID:     s3cfg.AccessKeyID,
			SecretAccessKey: s3cfg.SecretAccessKey,
			Prefix:          s3cfg.Prefix,
			UsePathStyle:    s3cfg.UsePathStyle,
		})
		return sink, fmt.Sprintf("s3://%s/%s", s3cfg.Bucket, s3cfg.Prefix), err
	}
	sink, err := backup.NewFileSink(a.config.BackupDir)
	if err != nil {
		return nil, "", err
	}
	return sink, sink.Dir(), nil
}

// Backup exports a snapshot, or lists snapshots with "backup list".
func (a *App) Backup(ctx context.Context, args []string) error {
	sink, where, err := backupSink(ctx, a)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		if args[0] != "list" {
			return usage("backup [list]")
		}
		names, err := sink.List(ctx)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			a.printf("No snapshots in %s.\n", where)
		}
		for _, n := range names {
			a.println(n)
		}
		return nil
	}

	name, n, err := backup.Export(ctx, a.store, sink, now())
	if err != nil {
		return err
	}
	a.log.Info(ctx, "snapshot exported", "name", name, "keys", n, "sink", where)
	a.printf("Saved %d keys to %s in %s.\n", n, name, where)
	return nil
}

// Restore writes a snapshot (the newest by default) back into the store and
// re-reads the session it contains.
func (a *App) Restore(ctx context.Context, args []string) error {
	sink, where, err := backupSink(ctx, a)
	if err != nil {
		return err
	}

	name := strings.Join(args, " ")
	if name == "" {
		if name, err = backup.Latest(ctx, sink); err != nil {
			return err
		}
	}
	ok, err := GetConfirm(a.reader, fmt.Sprintf("Restore %s from %s? Current data with the same keys is overwritten.", name, where), a.out)
	if err != nil || !ok {
		return err
	}

	n, err := backup.Restore(ctx, a.store, sink, name)
	if err != nil {
		return err
	}
	a.log.Info(ctx, "snapshot restored", "name", name, "keys", n)
	a.printf("Restored %d keys from %s.\n", n, name)

	prof, loggedIn, err := a.authService.Resume(ctx)
	if err != nil {
		return err
	}
	a.profile = prof
	if loggedIn {
		a.printf("Logged in as %s.\n", prof.Email)
	} else {
		a.println("The restored data has no active session; please log in.")
	}
	return nil
}
