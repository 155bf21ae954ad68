package domain

import "time"

// InventoryRow mirrors one on-hand stock row from the ERP BAQ export. Column
// names follow the upstream report so mirrored data stays diffable against it.
type InventoryRow struct {
	PartNum       string `json:"PartWhse_PartNum" bson:"part_num"`
	Description   string `json:"Part_PartDescription" bson:"description"`
	WarehouseCode string `json:"PartWhse_WarehouseCode" bson:"warehouse_code"`
	LotNum        string `json:"PartBin_LotNum" bson:"lot_num"`
	OnhandQty     string `json:"PartBin_OnhandQty" bson:"onhand_qty"`
}

// TransactionRow mirrors one part-transaction row from the ERP BAQ export.
type TransactionRow struct {
	PartNum       string `json:"PartTran_PartNum" bson:"part_num"`
	Description   string `json:"Part_PartDescription" bson:"description"`
	WarehouseCode string `json:"PartTran_WareHouseCode" bson:"warehouse_code"`
	TranType      string `json:"PartTran_TranType" bson:"tran_type"`
	PONum         string `json:"PartTran_PONum" bson:"po_num"`
	PackNum       string `json:"PartTran_PackNum" bson:"pack_num"`
	TranDate      string `json:"PartTran_TranDate" bson:"tran_date"`
	LotNum        string `json:"PartTran_LotNum" bson:"lot_num"`
	Quantity      string `json:"Calculated_QUANTITY" bson:"quantity"`
}

// ArchiveStamp marks one archival snapshot run.
type ArchiveStamp struct {
	Date time.Time `bson:"date"`
}
