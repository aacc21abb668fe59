// Package grid is a generic tabular view engine.
//
// Given a column schema, a record slice and the caller's filter/sort state,
// an Engine derives the visible page of rows through a strictly ordered
// pipeline:
//
//  1. Filter: every non-empty needle must be a case-insensitive substring of
//     the stringified field value (logical AND across columns).
//  2. Order: a stable sort on one field; nil sort keeps filter order.
//  3. Paginate: slice out the current page.
//
// The Engine owns only the pagination state (current page and page size).
// Filter and sort state belong to the caller; the engine reports user intent
// back through Intents and Handlers instead of mutating it.
//
// ColumnMenu and PageSizeSelector are the two interactive sub-controls. Both
// are dismissible popovers built on package popover.
package grid
