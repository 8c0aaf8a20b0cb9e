// Package crmfill provides a form-autocomplete widget backed by a remote CRM
// directory. A user types part of a company or contact name, the widget
// searches the directory, and the selected contact is copied into a host
// form, including a best-effort split of its postal address.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, rod/).
package crmfill
