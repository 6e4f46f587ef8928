package main

import (
	"reflect"
	"testing"

	"github.com/gridlens/gridlens/pkg/reconcile"
)

func TestParseFamilies(t *testing.T) {
	all, err := parseFamilies("all")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(all, reconcile.Families()) {
		t.Errorf("all = %v, want every family", all)
	}

	got, err := parseFamilies("generatorProfit, securityCharge")
	if err != nil {
		t.Fatal(err)
	}
	want := []reconcile.Family{reconcile.FamilyGeneratorProfit, reconcile.FamilySecurityCharge}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := parseFamilies("generatorProfit,bogus"); err == nil {
		t.Error("unknown family should be rejected")
	}
}
