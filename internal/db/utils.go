package db

import (
	"fmt"
	"strconv"

	dbpkg "github.com/dtnitsch/policy-engagement/pkg/db"
	"github.com/urfave/cli/v2"
)

// GetRunIDOrLatest returns the run ID from args, or the latest run if not provided
func GetRunIDOrLatest(c *cli.Context, database *dbpkg.DB) (int64, error) {
	if c.NArg() == 0 {
		id, err := database.LatestRunID()
		if err != nil {
			return 0, fmt.Errorf("%w. Run 'policy-engagement run --input ...' first", err)
		}
		return id, nil
	}

	runID, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid run ID: %s", c.Args().First())
	}
	return runID, nil
}
