// Package finanzas holds the pure calculations behind the dashboard and the
// transaction list: KPI totals, the chart series and the multi-criteria
// search. Nothing here touches the database or mutates its input.
package finanzas
