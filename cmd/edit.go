package cmd

import (
	"fmt"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/poppingmoon/slang/internal/config"
	"github.com/poppingmoon/slang/internal/edit"
	"github.com/poppingmoon/slang/internal/format"
)

var editCmd = &cobra.Command{
	Use:   "edit <operation> <args...>",
	Short: "Reorganize entries across all translation files",
	Long: `Reorganize entries across all translation files of the project.

Operations:
  move <origin> <destination>    rename in place or relocate a value
  copy <origin> <destination>    copy a value to a new path
  delete <path>                  remove a value everywhere
  outdated <path>                flag non-base translations as outdated
  add <locale> <path> <value>    insert a new value for one locale`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := osfs.New(".")
		cfg, err := config.Load(fs, configPath)
		if err != nil {
			return err
		}
		files, err := edit.Scan(fs, cfg)
		if err != nil {
			return err
		}
		coll, err := edit.NewCollection(fs, cfg, format.DefaultRegistry(), files)
		if err != nil {
			return err
		}
		engine := edit.NewEngine(coll)

		var res *edit.Result
		switch op, rest := args[0], args[1:]; op {
		case "move":
			if len(rest) != 2 {
				return fmt.Errorf("move expects <origin> <destination>")
			}
			res, err = engine.Move(rest[0], rest[1])
		case "copy":
			if len(rest) != 2 {
				return fmt.Errorf("copy expects <origin> <destination>")
			}
			res, err = engine.Copy(rest[0], rest[1])
		case "delete":
			if len(rest) != 1 {
				return fmt.Errorf("delete expects <path>")
			}
			res, err = engine.Delete(rest[0])
		case "outdated":
			if len(rest) != 1 {
				return fmt.Errorf("outdated expects <path>")
			}
			res, err = engine.Outdated(rest[0])
		case "add":
			if len(rest) != 3 {
				return fmt.Errorf("add expects <locale> <path> <value>")
			}
			res, err = engine.Add(rest[0], rest[1], rest[2])
		default:
			return fmt.Errorf("unknown operation %q (expected move, copy, delete, outdated, or add)", op)
		}
		if err != nil {
			return err
		}
		edit.RenderProgress(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
