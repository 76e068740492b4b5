package desktop

import (
	"strings"
	"testing"

	pt "github.com/mj1618/winium-desktop/internal/platform/platformtest"
)

func ledgerTabs() (*pt.Node, *pt.Node, *pt.Node) {
	overview := pt.New("TabItem", "Overview")
	payments := pt.New("TabItem", "Payments")
	win := pt.New("Window", "Ledger",
		pt.New("Tab", "").ID("tabAccounts").Add(overview, payments),
	)
	return win, overview, payments
}

func TestInspectTabGroup_StaticList(t *testing.T) {
	win, _, _ := ledgerTabs()
	s, d := newSession(t, `{"app": {"name": "Ledger", "Accounts": {"type": "TabGroup", "tabs": "Overview, Payments, Reports"}}}`, win)
	group := mustLookup(t, s, "Accounts")

	tabs, err := s.Inspect(group.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Finds) != 0 {
		t.Errorf("static tabs should not touch the live control, finds = %q", d.Finds)
	}
	if len(tabs) != 3 {
		t.Fatalf("got %d tabs, want 3", len(tabs))
	}
	want := group.XPath() + "/*[@ControlType='TabItem'][@Name='Payments']"
	if tabs[1].XPath() != want {
		t.Errorf("xpath = %q, want %q", tabs[1].XPath(), want)
	}
}

func TestClickTab_Static(t *testing.T) {
	win, _, payments := ledgerTabs()
	s, _ := newSession(t, `{"app": {"name": "Ledger", "Accounts": {"type": "TabGroup", "tabs": "Overview, Payments, Reports"}}}`, win)
	group := mustLookup(t, s, "Accounts")

	res, err := s.ClickTab(group.ID, "Payments")
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK || payments.Clicks != 1 {
		t.Errorf("result = %+v, clicks = %d", res, payments.Clicks)
	}
	if res.Target != "ledger/Accounts/Payments" {
		t.Errorf("target = %q", res.Target)
	}

	res, err = s.ClickTab(group.ID, "Reports")
	if err != nil {
		t.Fatal(err)
	}
	if res.OK || !strings.Contains(res.Message, "could not be located") {
		t.Errorf("configured but missing tab: result = %+v", res)
	}

	res, err = s.ClickTab(group.ID, "Audit")
	if err != nil {
		t.Fatal(err)
	}
	if res.OK || !strings.Contains(res.Message, "Overview, Payments, Reports") {
		t.Errorf("unknown tab: result = %+v", res)
	}
}

func TestClickTab_Live(t *testing.T) {
	win, overview, _ := ledgerTabs()
	s, _ := newSession(t, `{"xpathStrategy": "automationid", "app": {"name": "Ledger", "Accounts": {"type": "TabGroup", "automationId": "tabAccounts"}}}`, win)
	group := mustLookup(t, s, "Accounts")

	res, err := s.Tabs(group.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(res.Items, ","); got != "Overview,Payments" {
		t.Errorf("tabs = %s", got)
	}

	res, err = s.ClickTab(group.ID, "overview")
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK || overview.Clicks != 1 {
		t.Errorf("result = %+v, clicks = %d", res, overview.Clicks)
	}
}

func TestClickTab_Disabled(t *testing.T) {
	win, _, payments := ledgerTabs()
	payments.With("IsEnabled", "False")
	s, _ := newSession(t, `{"app": {"name": "Ledger", "Accounts": {"type": "TabGroup", "tabs": "Overview, Payments"}}}`, win)

	res, err := s.ClickTab(mustLookup(t, s, "Accounts").ID, "Payments")
	if err != nil {
		t.Fatal(err)
	}
	if res.OK || !strings.Contains(res.Message, "not enabled") {
		t.Errorf("result = %+v, want not enabled", res)
	}
	if payments.Clicks != 0 {
		t.Errorf("clicks = %d, want 0", payments.Clicks)
	}
}

func TestClickTab_GroupNotOnScreen(t *testing.T) {
	s, _ := newSession(t, `{"app": {"name": "Ledger", "Accounts": {"type": "TabGroup"}}}`)
	res, err := s.ClickTab(mustLookup(t, s, "Accounts").ID, "Overview")
	if err != nil {
		t.Fatal(err)
	}
	if res.OK {
		t.Error("expected failure")
	}
}

func TestClickTab_NotATabGroup(t *testing.T) {
	s, _ := newSession(t, editorDoc)
	if _, err := s.ClickTab(mustLookup(t, s, "Text").ID, "x"); err == nil {
		t.Error("expected error for a non tab group")
	}
}
