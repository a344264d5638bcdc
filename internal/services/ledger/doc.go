/*
Package ledger implements the wallet ledger engine: the only component
permitted to mutate wallet balances and spend counters and to create
PAYMENT, TOPUP and REFUND transaction records.

Every operation follows the same shape: load the wallet, validate
(balance, daily/monthly limits with lazy calendar rollover), create
the transaction record, apply the mutation, and persist the pair as a
unit of work.

Usage:

	svc := ledger.NewService(store, cacheSvc, metrics, log)

	result, err := svc.ProcessPayment(ctx, userID, amount, "cafeteria lunch")
	result, err = svc.ProcessTopup(ctx, userID, amount, "NFC kiosk top-up", nil)
	refund, err := svc.ProcessRefund(ctx, txnID, "order cancelled")

	approval, err := svc.ApproveTopupRequest(ctx, requestID, adminID)
	req, err := svc.RejectTopupRequest(ctx, requestID, adminID, "no proof of payment")

Concurrency:

Two concurrent spends against one wallet must not both validate
against a stale balance. The engine holds a per-wallet mutex across
each operation and, inside the storage transaction, reads the wallet
row FOR UPDATE, so the read-validate-mutate-persist sequence is
serialized per wallet.

Atomicity:

Transaction record and wallet update commit together inside
Store.ExecuteInTransaction. A store that reports
repositories.ErrAtomicityNotSupported is driven through the
compensation path instead: the record is created first and deleted
again if a later write fails, so a COMPLETED transaction never
survives without its balance change. Compensations are logged as
warnings; the original failure is what callers see.
*/
package ledger
