package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/trezcool/masomo-admin/core/course"
)

func (cli *commandLine) listCourses(page, size int, search string) error {
	state, err := cli.crsSvc.List(context.Background(), page, size, &course.Filter{Search: search})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tTITLE\tCREDITS")
	for _, crs := range state.PageSlice() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", crs.ID, crs.Code, crs.Title, crs.Credits)
	}
	if err = w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "page %d/%d (%d courses)\n",
		state.PageInfo.CurrentPage, state.PageInfo.TotalPages, state.PageInfo.TotalItems)
	return nil
}
