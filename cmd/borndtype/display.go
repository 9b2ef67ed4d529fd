package main

import (
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/born-ml/dtypes/internal/dtype"
)

var (
	yes = color.New(color.FgGreen).SprintFunc()
	no  = color.New(color.FgRed).SprintFunc()
)

func yesNo(ok bool) string {
	if ok {
		return yes("yes")
	}
	return no("no")
}

func joinDtypes(ds []dtype.Dtype) string {
	if len(ds) == 0 {
		return "-"
	}
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}

func renderTable(w io.Writer, header []string, data [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.SetAutoWrapText(false)
	table.AppendBulk(data)
	table.Render()
}
