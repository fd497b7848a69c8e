// Package fixture holds the descriptor model of the test framework and the scanner that
// builds it.
//
// Fixture types are not discovered by reflection. Each type is an explicit entry in a
// registration table (Type) whose members carry declarative markers:
//
//	fixture.MustRegister(fixture.Type{
//		Name:    "Accounts",
//		Markers: []fixture.Marker{fixture.FixtureMarker("account ledger")},
//		New:     fixture.Ctor(newAccounts),
//		Members: []fixture.Member{
//			fixture.Method("Open", (*accounts).open, fixture.FixtureSetupMarker),
//			fixture.Method("Deposit", (*accounts).deposit, fixture.TestMarker()),
//			fixture.Method("Overdraft", (*accounts).overdraft, fixture.TestMarker(), fixture.IgnoreMarker("flaky")),
//		},
//	})
//
// Scan turns a Type into an immutable Descriptor. Test order is the member declaration
// order unless OrderLexical is requested.
package fixture
