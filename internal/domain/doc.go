// Package domain models air-quality observations and the rules used to
// normalize and classify them.
//
// # Data Source
//
// Raw datasets are city-level daily AQI exports, typically Kaggle dumps of
// national monitoring networks. Column names vary between exports ("Date",
// "Datetime", "Location", "Air Quality Index", "pm2.5 (ug/m3)", "Ozone", ...)
// and are mapped onto a fixed canonical schema by [NormalizeColumns].
//
// # Canonical Schema
//
//	Date, City, AQI              required identity and measurement columns
//	PM2.5, PM10, NO2, SO2, CO, O3 optional pollutant concentrations
//	Year, Month, Day             derived from Date
//	Season                       derived from Month
//	Health_Category              derived from AQI
//
// Columns matching no rule are carried through with their stripped name.
//
// # Missing Values
//
// Empty cells and the usual NA tokens ("NA", "N/A", "NaN", "null", ...) are
// missing. Rows missing AQI are dropped; every other missing cell is
// materialized as zero. A zero pollutant reading therefore means either
// "sensor read zero" or "no data", and downstream correlation inherits that
// ambiguity.
//
// # Seasons
//
// The dataset region uses a four-season monsoon calendar, not the
// meteorological one:
//
//	Dec-Feb  Winter
//	Mar-May  Summer
//	Jun-Sep  Monsoon
//	Oct-Nov  Post-Monsoon
//
// # Health Categories
//
// US EPA AQI bands with inclusive upper bounds, so AQI 50 is Good and 51 is
// Moderate:
//
//	  0-50   Good
//	 51-100  Moderate
//	101-150  Unhealthy for Sensitive Groups
//	151-200  Unhealthy
//	201-300  Very Unhealthy
//	301-500  Hazardous
//
// AQI is bounded to [0, 500]; rows outside that range are treated as sensor
// corruption and dropped during cleaning.
package domain
