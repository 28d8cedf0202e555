package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Yield Prediction History
-- Append-only: rows are never deleted, and only the actual-yield linkage and
-- the notification flag mutate after insert.
CREATE TABLE IF NOT EXISTS yield_predictions (
    prediction_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    crop_id VARCHAR(100) NOT NULL,
    farmer_id VARCHAR(100) NOT NULL,
    crop_name VARCHAR(100) NOT NULL,
    prediction_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    area_acres DOUBLE PRECISION NOT NULL,
    per_acre_min DOUBLE PRECISION NOT NULL,
    per_acre_expected DOUBLE PRECISION NOT NULL,
    per_acre_max DOUBLE PRECISION NOT NULL,
    total_min DOUBLE PRECISION NOT NULL,
    total_expected DOUBLE PRECISION NOT NULL,
    total_max DOUBLE PRECISION NOT NULL,
    confidence_percent DOUBLE PRECISION NOT NULL,
    factors_considered JSONB NOT NULL DEFAULT '[]'::jsonb,
    model_version VARCHAR(20) NOT NULL,
    previous_prediction_id UUID REFERENCES yield_predictions(prediction_id),
    significant_deviation BOOLEAN NOT NULL DEFAULT FALSE,
    deviation_note TEXT,

    -- Harvest settlement, written at most once per prediction
    actual_yield_quintals DOUBLE PRECISION,
    variance_quintals DOUBLE PRECISION,
    variance_percent DOUBLE PRECISION,
    harvest_date TIMESTAMPTZ,
    quality_grade VARCHAR(20),
    selling_price_per_quintal DOUBLE PRECISION,
    mandi_name VARCHAR(100),

    notification_sent BOOLEAN NOT NULL DEFAULT FALSE,
    notification_sent_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_yield_predictions_crop
    ON yield_predictions (crop_id, prediction_date DESC);

CREATE INDEX IF NOT EXISTS idx_yield_predictions_farmer_crop
    ON yield_predictions (farmer_id, crop_name)
    WHERE actual_yield_quintals IS NOT NULL;

CREATE INDEX IF NOT EXISTS idx_yield_predictions_pending_notification
    ON yield_predictions (prediction_date)
    WHERE significant_deviation AND NOT notification_sent;

-- Mandi Price Mirror
-- Stores rows fetched from the external price feed so trend analysis can fall
-- back to recent data when the feed is unreachable.
CREATE TABLE IF NOT EXISTS mandi_prices (
    mandi_price_id BIGSERIAL PRIMARY KEY,
    commodity VARCHAR(100) NOT NULL,
    price_date DATE NOT NULL,
    mandi_name VARCHAR(100) NOT NULL DEFAULT '',
    modal_price DOUBLE PRECISION,
    min_price DOUBLE PRECISION,
    max_price DOUBLE PRECISION,
    arrival_quintals DOUBLE PRECISION,
    fetched_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (commodity, price_date, mandi_name)
);

CREATE INDEX IF NOT EXISTS idx_mandi_prices_commodity_date
    ON mandi_prices (commodity, price_date DESC);
`
