package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/danmuck/eppctl/internal/epp"
	"github.com/danmuck/eppctl/internal/epp/domain"
	"github.com/danmuck/eppctl/internal/epp/extension/namestore"
	"github.com/danmuck/eppctl/internal/epp/extension/rgp"
)

func printEnvelope(w io.Writer, res epp.Result, q *epp.MessageQueue, ids epp.TrIDs) {
	fmt.Fprintf(w, "result:\t%d %s\n", res.Code, res.Message)
	if q != nil {
		fmt.Fprintf(w, "queue:\t%d message(s), next id=%s\n", q.Count, q.ID)
	}
	fmt.Fprintf(w, "trid:\t%s / %s\n", ids.Client, ids.Server)
}

func printCheck[R any](w io.Writer, resp *epp.Response[domain.CheckResult, R]) {
	if resp.ResData != nil {
		for _, it := range resp.ResData.Items {
			state := "taken"
			if it.Available {
				state = "available"
			}
			if it.Reason != "" {
				state += " (" + it.Reason + ")"
			}
			fmt.Fprintf(w, "%s\t%s\n", it.Name, state)
		}
	}
	printExtension(w, resp.Extension)
}

func printInfo[R any](w io.Writer, resp *epp.Response[domain.InfoResult, R]) {
	if r := resp.ResData; r != nil {
		fmt.Fprintf(w, "name:\t%s (%s)\n", r.Name, r.ROID)
		fmt.Fprintf(w, "status:\t%s\n", strings.Join(r.Statuses, ", "))
		if r.Registrant != "" {
			fmt.Fprintf(w, "registrant:\t%s\n", r.Registrant)
		}
		for _, c := range r.Contacts {
			fmt.Fprintf(w, "contact:\t%s %s\n", c.Type, c.ID)
		}
		if len(r.NameServers) > 0 {
			fmt.Fprintf(w, "ns:\t%s\n", strings.Join(r.NameServers, ", "))
		}
		fmt.Fprintf(w, "sponsor:\t%s\n", r.ClientID)
		if !r.Expires.IsZero() {
			fmt.Fprintf(w, "expires:\t%s\n", r.Expires.Format(time.RFC3339))
		}
	}
	printExtension(w, resp.Extension)
}

func printUpdate[R any](w io.Writer, resp *epp.Response[epp.NoResult, R]) {
	printExtension(w, resp.Extension)
}

func printExtension[R any](w io.Writer, ext *R) {
	if ext == nil {
		return
	}
	switch v := any(*ext).(type) {
	case namestore.NameStore:
		fmt.Fprintf(w, "subproduct:\t%s\n", v.SubProduct)
	case rgp.UpdateData, rgp.InfoData:
		statuses := v.(rgp.Response).Statuses()
		parts := make([]string, len(statuses))
		for i, s := range statuses {
			parts[i] = string(s)
		}
		fmt.Fprintf(w, "rgp:\t%s\n", strings.Join(parts, ", "))
	}
}
