// Package notify runs the periodic job alert scan: for every recipient it
// searches the store with the recipient's preferences, drops jobs they were
// already told about, and hands the rest to a Sender.
//
// Recipient management itself is out of scope; recipients arrive through
// the RecipientSource interface.
package notify
