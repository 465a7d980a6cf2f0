package contacts_test

import (
	"errors"
	"fmt"
	"time"

	"github.com/lwmacct/251215-go-pkg-contacts/pkg/actor"
	"github.com/lwmacct/251215-go-pkg-contacts/pkg/contacts"
)

// Example 演示联系人 Actor 的完整流程
func Example() {
	sys := actor.NewSystem("contacts-example")
	defer sys.Shutdown()

	pid, err := contacts.Spawn(sys, "contacts", contacts.SeedStore(),
		contacts.WithIDGenerator(func() contacts.ContactID { return "john-1" }))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	client := contacts.NewClient(pid, time.Second)

	john, _ := client.Create(contacts.NewPatch().WithName("John").WithStreet("P. Circus"))
	fmt.Printf("Created: %s %s\n", john.ID, john.Name)

	moved, _ := client.Update("abc-123", contacts.NewPatch().WithStreet("New St"))
	fmt.Printf("Updated: %s lives at %s\n", moved.Name, moved.Street)

	_, _ = client.Remove("def-456")

	all, _ := client.List()
	for _, c := range all {
		fmt.Printf("%s: %s, %s\n", c.ID, c.Name, c.Street)
	}

	_, err = client.Get("def-456")
	fmt.Println(errors.Is(err, contacts.ErrNotFound))

	// Output:
	// Created: john-1 John
	// Updated: Henk lives at New St
	// abc-123: Henk, New St
	// john-1: John, P. Circus
	// true
}

// Example_behavior 演示直接使用 Behavior 和底层消息
func Example_behavior() {
	sys := actor.NewSystem("behavior-example")
	defer sys.Shutdown()

	pid, _ := actor.SpawnState(sys, "contacts", contacts.SeedStore(), contacts.Behavior())

	reply, err := pid.Ask(func(replyTo *actor.PID) actor.Message {
		return &contacts.GetOne{ReplyTo: replyTo, ContactID: "nonexistent"}
	}, 250*time.Millisecond)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	switch r := reply.(type) {
	case *contacts.Success:
		fmt.Println("found", r.Contact.Name)
	case *contacts.NotFound:
		fmt.Println("not found:", r.ContactID)
	}

	// Output:
	// not found: nonexistent
}
