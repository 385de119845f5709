package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/rgbilling/gst-billing/internal/app"
	"github.com/rgbilling/gst-billing/internal/config"
	"github.com/rgbilling/gst-billing/internal/domain/repository"
	"github.com/rgbilling/gst-billing/pkg/gst"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:  "billingctl",
		Usage: "inspect and export saved GST invoices",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list invoices, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "invoice-no", Usage: "invoice number contains"},
					&cli.StringFlag{Name: "date", Usage: "exact date, dd-mm-yyyy or yyyy-mm-dd"},
				},
				Action: withApp(listInvoices),
			},
			{
				Name:      "show",
				Usage:     "print one invoice with its items",
				ArgsUsage: "<id>",
				Action:    withApp(showInvoice),
			},
			{
				Name:      "export",
				Usage:     "render an invoice and save it to the export destination",
				ArgsUsage: "<id>",
				Action:    withApp(exportInvoice),
			},
			{
				Name:      "delete",
				Usage:     "delete an invoice and its items",
				ArgsUsage: "<id>",
				Action:    withApp(deleteInvoice),
			},
		},
	}
}

func withApp(run func(c *cli.Context, a *app.App) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		a, err := app.New(ctx(c), config.Load())
		if err != nil {
			return err
		}
		defer a.Close()
		return run(c, a)
	}
}

func argID(c *cli.Context) (uint, error) {
	if c.NArg() != 1 {
		return 0, cli.Exit("expected exactly one invoice id", 2)
	}
	id, err := strconv.ParseUint(c.Args().First(), 10, 64)
	if err != nil || id == 0 {
		return 0, cli.Exit(fmt.Sprintf("invalid invoice id %q", c.Args().First()), 2)
	}
	return uint(id), nil
}

func listInvoices(c *cli.Context, a *app.App) error {
	invoices, err := a.Invoices.ListInvoices(ctx(c), &repository.InvoiceFilterParams{
		InvoiceNo: c.String("invoice-no"),
		Date:      c.String("date"),
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tINVOICE NO\tDATE\tCUSTOMER\tGRAND TOTAL")
	for _, inv := range invoices {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", inv.ID, inv.InvoiceNo, inv.Date, inv.CustomerName, gst.FormatINR(inv.GrandTotal))
	}
	return w.Flush()
}

func showInvoice(c *cli.Context, a *app.App) error {
	id, err := argID(c)
	if err != nil {
		return err
	}
	inv, err := a.Invoices.GetInvoice(ctx(c), id)
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "Invoice %s dated %s\n", inv.InvoiceNo, inv.Date)
	fmt.Fprintf(out, "Customer: %s (GSTIN %s, state %s)\n", inv.CustomerName, inv.CustomerGSTIN, inv.StateCode)
	if inv.WorkOrderNo != "" {
		fmt.Fprintf(out, "Work order: %s\n", inv.WorkOrderNo)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SL\tDESCRIPTION\tHSN\tQTY\tUNIT\tRATE\tAMOUNT\tTAX")
	for _, it := range inv.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%v\t%s\t%s\t%s\t%s\n",
			it.SlNo, it.Description, it.HSN, it.Qty, it.Unit,
			gst.FormatINR(it.Rate), gst.FormatINR(it.Amount), it.TaxType.Label())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	printTotal(out, "Taxable amount", inv.TaxableAmount)
	printTotal(out, "CGST @ "+gst.FormatRate(inv.CGSTRate)+"%", inv.CGSTAmount)
	printTotal(out, "SGST @ "+gst.FormatRate(inv.SGSTRate)+"%", inv.SGSTAmount)
	printTotal(out, "IGST @ "+gst.FormatRate(inv.IGSTRate)+"%", inv.IGSTAmount)
	printTotal(out, "Total GST", inv.TotalGST)
	printTotal(out, "Grand total", inv.GrandTotal)
	fmt.Fprintln(out, inv.AmountInWords)
	return nil
}

func printTotal(w io.Writer, label string, v float64) {
	fmt.Fprintf(w, "%-18s %14s\n", label, gst.FormatINR(v))
}

func exportInvoice(c *cli.Context, a *app.App) error {
	id, err := argID(c)
	if err != nil {
		return err
	}
	res, err := a.Exports.ExportInvoice(ctx(c), id)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s -> %s (%d pages)\n", res.FileName, res.Location, res.Pages)
	return nil
}

func deleteInvoice(c *cli.Context, a *app.App) error {
	id, err := argID(c)
	if err != nil {
		return err
	}
	if err := a.Invoices.DeleteInvoice(ctx(c), id); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "deleted invoice %d\n", id)
	return nil
}

func ctx(c *cli.Context) context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}
