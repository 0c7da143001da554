package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"splitbill/src/pkg/config"
	"splitbill/src/pkg/email"
	"splitbill/src/pkg/receipt"
	"splitbill/src/pkg/split"
	"splitbill/src/pkg/store"
	"splitbill/src/pkg/util"
)

/*
main computes who owes what for a parsed receipt.

The receipt comes from -receipt (a parsed-receipt.json produced by
scan-receipt) or, when the flag is omitted, from the session store written
by the last successful scan.

Assignments use person and item indexes:

	-assign "0:0+1;1:1"    item 0 shared by persons 0 and 1, item 1 to person 1

In percentage mode -percentages takes one value per person:

	-mode percentage -percentages "60,40"

The computed summary is printed, written back to the session store, and
optionally emailed with -email-to.
*/
func main() {
	config.CheckIfEnvVarsPresent()

	// Common flags.
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")

	// Program-specific flags.
	receiptPath := flag.String("receipt", "", "Path to parsed-receipt.json. Defaults to the last scanned receipt in the session store.")
	peopleFlag := flag.String("people", "", "Comma-separated names, e.g. \"Alice,Bob\". First person gets all items until -assign says otherwise.")
	modeFlag := flag.String("mode", string(split.ModeByItem), "Split mode: by-item or percentage.")
	assignFlag := flag.String("assign", "", "Item assignments as \"item:person+person;...\" using zero-based indexes.")
	percentagesFlag := flag.String("percentages", "", "Comma-separated percentages, one per person (percentage mode).")
	taxSplitFlag := flag.String("tax-split", string(split.TaxSplitEqual), "Tax split: equal or assigned.")
	taxPayer := flag.Int("tax-payer", 0, "Person index who pays the tax when -tax-split is assigned.")
	emailTo := flag.String("email-to", "", "Comma-separated recipient addresses. Empty disables email.")

	flag.Parse()
	util.RequiredFlag(peopleFlag, "people")
	util.EnsureFlags()
	config.InitializeConfig(*configPath)

	sessionStore, e := store.New()
	e.QuitIf("error")

	parsed, e := loadReceipt(*receiptPath, sessionStore)
	e.QuitIf("error")

	people := splitAndTrim(*peopleFlag)
	if len(people) == 0 {
		tl.Log(tl.Error, palette.RedBold, "Flag %s needs at least one name", "-people")
		os.Exit(1)
	}

	mode, modeErr := split.ParseMode(*modeFlag)
	xerr.QuitIfError(modeErr, "Invalid -mode flag")
	taxSplit, taxSplitErr := split.ParseTaxSplit(*taxSplitFlag)
	xerr.QuitIfError(taxSplitErr, "Invalid -tax-split flag")

	session := split.NewSession(parsed, people)
	session.SetMode(mode)
	session.SetTaxSplit(taxSplit, *taxPayer)

	e = applyAssignments(session, *assignFlag, len(parsed.Items), len(people))
	e.QuitIf("error")

	e = applyPercentages(session, *percentagesFlag, len(people))
	e.QuitIf("error")

	summary, violation := session.Finalize()
	if violation != nil {
		tl.Log(tl.Error, palette.RedBold, "Cannot finalize the split: '%s'", violation)
		os.Exit(1)
	}

	shareText := summary.ShareText(parsed)
	fmt.Println(shareText)

	summaryBytes, marshalErr := json.MarshalIndent(summary, "", "  ")
	xerr.QuitIfError(marshalErr, "Unable to marshal split summary")
	e = sessionStore.Put(store.KeyLastSplit, summaryBytes)
	e.QuitIf("error")

	if strings.TrimSpace(*emailTo) != "" {
		recipients := splitAndTrim(*emailTo)
		e = email.SendMessage(
			email.Provider(email.Cfg.Provider), util.Ptr(email.Cfg.SendEmails),
			email.Cfg.SenderAddress, recipients,
			"Bill split summary", shareText, "", nil,
		)
		e.QuitIf("error")
	}

	tl.Log(tl.Notice1, palette.GreenBold, "%s for %v people", "Split finalized", len(people))
}

func loadReceipt(receiptPath string, sessionStore store.Store) (parsed receipt.Receipt, e *xerr.Error) {
	var payload []byte

	if strings.TrimSpace(receiptPath) != "" {
		fileBytes, readErr := os.ReadFile(receiptPath)
		if readErr != nil {
			return parsed, xerr.NewError(readErr, "read parsed receipt file", receiptPath)
		}
		payload = fileBytes
	} else {
		stored, found, e := sessionStore.Get(store.KeyParsedReceipt)
		if e != nil {
			return parsed, e
		}
		if !found {
			err := fmt.Errorf("no stored receipt")
			return parsed, xerr.NewError(err, "no -receipt flag and no receipt in the session store; run scan-receipt first", nil)
		}
		payload = stored
	}

	parsed, validationErr := receipt.ParsePayload(payload)
	if validationErr != nil {
		return parsed, xerr.NewError(validationErr, "parsed receipt does not match the receipt schema", receiptPath)
	}
	return parsed, nil
}

func splitAndTrim(value string) []string {
	var parts []string
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

/*
applyAssignments parses "item:person+person;..." and replays it on the
session. Items keep their default assignment (everything to person 0) when
the flag does not mention them.
*/
func applyAssignments(session *split.Session, assignFlag string, itemCount, peopleCount int) (e *xerr.Error) {
	trimmed := strings.TrimSpace(assignFlag)
	if trimmed == "" {
		return nil
	}

	for _, segment := range strings.Split(trimmed, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		itemPart, peoplePart, found := strings.Cut(segment, ":")
		if !found {
			err := fmt.Errorf("segment %q has no ':'", segment)
			return xerr.NewError(err, "bad -assign segment, expected item:person+person", assignFlag)
		}

		itemIndex, parseErr := strconv.Atoi(strings.TrimSpace(itemPart))
		if parseErr != nil || itemIndex < 0 || itemIndex >= itemCount {
			err := fmt.Errorf("bad item index %q", itemPart)
			return xerr.NewError(err, "item index out of range in -assign", assignFlag)
		}

		var assignees []int
		for _, personPart := range strings.Split(peoplePart, "+") {
			personIndex, parseErr := strconv.Atoi(strings.TrimSpace(personPart))
			if parseErr != nil || personIndex < 0 || personIndex >= peopleCount {
				err := fmt.Errorf("bad person index %q", personPart)
				return xerr.NewError(err, "person index out of range in -assign", assignFlag)
			}
			assignees = append(assignees, personIndex)
		}

		// Drop the default assignment, then toggle in the requested people.
		for personIndex := 0; personIndex < peopleCount; personIndex++ {
			if session.IsAssigned(itemIndex, personIndex) {
				session.ToggleAssignment(itemIndex, personIndex)
			}
		}
		for _, personIndex := range assignees {
			session.ToggleAssignment(itemIndex, personIndex)
		}
	}
	return nil
}

func applyPercentages(session *split.Session, percentagesFlag string, peopleCount int) (e *xerr.Error) {
	trimmed := strings.TrimSpace(percentagesFlag)
	if trimmed == "" {
		return nil
	}

	parts := splitAndTrim(trimmed)
	if len(parts) != peopleCount {
		err := fmt.Errorf("%d values for %d people", len(parts), peopleCount)
		return xerr.NewError(err, "-percentages needs one value per person", percentagesFlag)
	}

	for personIndex, part := range parts {
		value, parseErr := strconv.ParseFloat(part, 64)
		if parseErr != nil {
			return xerr.NewError(parseErr, "bad percentage value in -percentages", part)
		}
		session.SetPercentage(personIndex, value)
	}
	return nil
}
