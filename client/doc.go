/*
Package client drives a whole distribution cycle on behalf of the
distribution authority.

A Driver starts the cycle, counts the holders in batches, seals the total and
then pays every holder. Payouts are independent and are submitted by a pool of
workers. A failed run can be resumed: holders already counted or already paid
are recognized and skipped.
*/
package client
