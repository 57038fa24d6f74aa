package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/acadmate/internal/client/models"
	"github.com/dmitrijs2005/acadmate/internal/client/services"
)

func (a *App) Folders(ctx context.Context, args []string) error {
	names, err := a.libraryService.ListFolders(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		files, err := a.libraryService.ListFiles(ctx, name)
		if err != nil {
			return err
		}
		a.printf("%s (%d)\n", name, len(files))
	}
	return nil
}

func (a *App) MkFolder(ctx context.Context, args []string) error {
	name, err := a.argOrAsk(args, "Folder name")
	if err != nil {
		return err
	}
	if err := a.libraryService.CreateFolder(ctx, name); err != nil {
		return err
	}
	a.printf("Folder %q created.\n", strings.TrimSpace(name))
	return nil
}

func (a *App) RmFolder(ctx context.Context, args []string) error {
	name, err := a.argOrAsk(args, "Folder name")
	if err != nil {
		return err
	}
	ok, err := GetConfirm(a.reader, fmt.Sprintf("Delete folder %q and all its files?", name), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.libraryService.DeleteFolder(ctx, name); err != nil {
		return err
	}
	a.printf("Folder %q deleted.\n", name)
	return nil
}

// Files lists the files of a folder, General by default.
func (a *App) Files(ctx context.Context, args []string) error {
	folder := strings.Join(args, " ")
	if folder == "" {
		folder = models.DefaultFolder
	}
	files, err := a.libraryService.ListFiles(ctx, folder)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		a.printf("%s is empty.\n", folder)
		return nil
	}
	for i, f := range files {
		a.printf("%d. %s\n", i+1, f.Name)
	}
	return nil
}

// Upload stores a PDF from disk. With two or more arguments the first is the
// folder and the rest the path; otherwise both are prompted for.
func (a *App) Upload(ctx context.Context, args []string) error {
	folder, path, err := a.folderAndName(args, "File path")
	if err != nil {
		return err
	}
	name, err := a.libraryService.Upload(ctx, folder, path)
	if err != nil {
		return err
	}
	a.printf("Uploaded %s to %s.\n", name, folder)
	return nil
}

func (a *App) RmFile(ctx context.Context, args []string) error {
	folder, name, err := a.folderAndName(args, "File name")
	if err != nil {
		return err
	}
	if err := a.libraryService.DeleteFile(ctx, folder, name); err != nil {
		return err
	}
	a.printf("Deleted %s from %s.\n", name, folder)
	return nil
}

// View opens a stored PDF in a paged text viewer.
func (a *App) View(ctx context.Context, args []string) error {
	folder, name, err := a.folderAndName(args, "File name")
	if err != nil {
		return err
	}
	v, err := a.libraryService.Open(ctx, folder, name)
	if err != nil {
		return err
	}
	return a.viewLoop(v)
}

func (a *App) viewLoop(v *services.Viewer) error {
	for {
		a.printf("--- %s | page %d/%d | zoom %.1f ---\n", v.Name, v.Page(), v.NumPages(), v.Scale())
		if err := v.Render(a.out); err != nil {
			return err
		}

		cmd, err := a.ask("n(ext), p(rev), g <page>, + zoom in, - zoom out, q(uit)")
		if err != nil {
			return err
		}
		fields := strings.Fields(cmd)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "n", "next":
			v.Next()
		case "p", "prev":
			v.Prev()
		case "+":
			v.ZoomIn()
		case "-":
			v.ZoomOut()
		case "g", "goto":
			if len(fields) != 2 {
				a.println("Usage: g <page>")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				a.println("Usage: g <page>")
				continue
			}
			v.Goto(n)
		case "q", "quit":
			return nil
		default:
			a.println("Unknown viewer command:", fields[0])
		}
	}
}

func (a *App) argOrAsk(args []string, prompt string) (string, error) {
	if v := strings.Join(args, " "); v != "" {
		return v, nil
	}
	return a.ask(prompt)
}

func (a *App) folderAndName(args []string, prompt string) (string, string, error) {
	if len(args) >= 2 {
		return args[0], strings.Join(args[1:], " "), nil
	}
	folder, err := a.ask("Folder [" + models.DefaultFolder + "]")
	if err != nil {
		return "", "", err
	}
	if folder == "" {
		folder = models.DefaultFolder
	}
	name, err := a.ask(prompt)
	if err != nil {
		return "", "", err
	}
	return folder, name, nil
}
