// Package models defines the persisted domain models for splitsettle.
//
// # Models
//
//   - Group: an ordered, duplicate-free list of member names
//   - Expense: one shared cost, its payer and the members splitting it
//
// Balances and settlements are never stored. They are derived from a group's
// expenses by the calculator package on every request.
//
// # Design Principles
//
// 1. **Members are names**: payers and participants reference Group.Members by name
// 2. **Immutable records**: groups keep their members for life; expenses are added or
// removed, never edited
// 3. **No circular references**: relationships use ID strings instead of pointers
package models
