package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"view-binder/accessor"
	"view-binder/view"
	"view-binder/warehouse"
)

// samples picks the part of the sample order each view is bound from.
var samples = map[string]func(*warehouse.Order) (any, error){
	"OrderView":     func(o *warehouse.Order) (any, error) { return o, nil },
	"OrderSummary":  func(o *warehouse.Order) (any, error) { return o, nil },
	"CustomerView":  func(o *warehouse.Order) (any, error) { return accessor.Resolve(o.Customer) },
	"AddressView":   func(o *warehouse.Order) (any, error) { return o.ShippingAddress, nil },
	"OrderItemView": func(o *warehouse.Order) (any, error) { return o.Items[0], nil },
	"ProductView":   func(o *warehouse.Order) (any, error) { return o.Items[0].Product, nil },
}

func newRenderCmd(a *app) *cobra.Command {
	var headers bool

	cmd := &cobra.Command{
		Use:   "render <view>",
		Short: "Bind the sample order into a view and print the response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.build(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.format == formatYAML {
				tree, err := view.Normalize(v)
				if err != nil {
					return err
				}
				return writeYAML(out, tree)
			}

			r, err := view.Render(v)
			if err != nil {
				return err
			}

			if headers {
				fmt.Fprintf(out, "Status: %d\n", r.Status)
				keys := make([]string, 0, len(r.Headers))
				for k := range r.Headers {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(out, "%s: %s\n", k, r.Headers[k])
				}
				fmt.Fprintln(out)
			}

			var buf bytes.Buffer
			if err := json.Indent(&buf, r.Body, "", "  "); err != nil {
				return err
			}
			buf.WriteByte('\n')
			_, err = buf.WriteTo(out)

			return err
		},
	}
	cmd.Flags().BoolVar(&headers, "headers", false, "print the status and headers before the body")

	return cmd
}

func (a *app) build(name string) (any, error) {
	order := warehouse.SampleOrder()

	if name == "OrderList" {
		return warehouse.ListOrders(a.binder, []*warehouse.Order{order})
	}

	t, err := lookupType(name)
	if err != nil {
		return nil, err
	}

	sample, ok := samples[name]
	if !ok {
		return nil, fmt.Errorf("no sample source for %s", name)
	}
	source, err := sample(order)
	if err != nil {
		return nil, err
	}

	return a.binder.Construct(t, source)
}
